package models

import (
	"testing"

	"wellwish/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMetaRejectsWrongPayload(t *testing.T) {
	n := &Notification{Type: domain.NotifApplication}
	err := n.SetMeta(BookingMeta{BookingID: 1, Amount: 20})
	assert.ErrorIs(t, err, ErrMetaTypeMismatch)

	n = &Notification{Type: domain.NotifBookingRequest}
	err = n.SetMeta(ChatMeta{SenderName: "x"})
	assert.ErrorIs(t, err, ErrMetaTypeMismatch)
}

func TestSetMetaRejectsUnknownPayload(t *testing.T) {
	n := &Notification{Type: domain.NotifApplication}
	err := n.SetMeta(struct{ X int }{1})
	assert.Error(t, err)
}

func TestApplicationMetaRoundTrip(t *testing.T) {
	n := &Notification{Type: domain.NotifApplication}
	require.NoError(t, n.SetMeta(ApplicationMeta{
		PostID:   30,
		CareType: "elderly care",
		Location: "Liberec",
		Budget:   350,
		Duration: "2 weeks",
	}))

	meta, err := n.ApplicationMeta()
	require.NoError(t, err)
	assert.Equal(t, uint(30), meta.PostID)
	assert.Equal(t, "elderly care", meta.CareType)
	assert.Equal(t, 350.0, meta.Budget)

	// Reading the same record under the wrong type must fail.
	_, err = n.BookingMeta()
	assert.ErrorIs(t, err, ErrMetaTypeMismatch)
	_, err = n.ChatMeta()
	assert.ErrorIs(t, err, ErrMetaTypeMismatch)
}

func TestBookingMetaAcrossBookingTypes(t *testing.T) {
	for _, typ := range []string{
		domain.NotifBookingRequest,
		domain.NotifBookingAccepted,
		domain.NotifBookingRejected,
		domain.NotifPaymentRequired,
		domain.NotifBookingPaid,
	} {
		n := &Notification{Type: typ}
		require.NoError(t, n.SetMeta(BookingMeta{BookingID: 7, Amount: 20}), typ)
		meta, err := n.BookingMeta()
		require.NoError(t, err, typ)
		assert.Equal(t, uint(7), meta.BookingID, typ)
	}
}

func TestSetMetaNilClears(t *testing.T) {
	n := &Notification{Type: domain.NotifApplication, Metadata: `{"post_id":30}`}
	require.NoError(t, n.SetMeta(nil))
	assert.Empty(t, n.Metadata)
}
