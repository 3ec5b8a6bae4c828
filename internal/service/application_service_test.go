package service

import (
	"testing"
	"time"

	"wellwish/internal/domain"
	"wellwish/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newApplicationFixture(t *testing.T) (*ApplicationService, *mockNotificationStore, *mockCareseekerListingStore, *mockProfileStore, *recordingPusher, *recordingMailer) {
	t.Helper()
	notifs := &mockNotificationStore{}
	listings := &mockCareseekerListingStore{}
	profiles := &mockProfileStore{}
	hub := newRecordingPusher()
	mail := newRecordingMailer()
	svc := NewApplicationService(notifs, listings, profiles, hub, mail, "admin@wellwish.test")
	return svc, notifs, listings, profiles, hub, mail
}

func carePost() *models.CareseekerListing {
	return &models.CareseekerListing{
		ID:       30,
		UserID:   2,
		Title:    "Night nurse needed",
		CareType: "elderly care",
		Location: "Liberec",
		Budget:   350,
		Duration: "2 weeks",
	}
}

func TestSubmitApplication(t *testing.T) {
	svc, notifs, listings, profiles, hub, mail := newApplicationFixture(t)

	listings.On("GetByID", uint(30)).Return(carePost(), nil)
	notifs.On("HasApplication", uint(1), uint(30)).Return(false, nil)
	profiles.On("GetOrCreateByUserID", uint(1)).Return(&models.Profile{
		UserID: 1, FullName: "Jane Doe", ContactNumber: "+420123456789",
	}, nil)
	notifs.On("Create", mock.Anything).Return(nil)

	n, err := svc.SubmitApplication(1, 30)
	require.NoError(t, err)
	assert.Equal(t, domain.NotifApplication, n.Type)
	assert.Equal(t, uint(2), n.ReceiverID)
	assert.Contains(t, n.Message, "Jane Doe")

	meta, err := n.ApplicationMeta()
	require.NoError(t, err)
	assert.Equal(t, uint(30), meta.PostID)
	assert.Equal(t, "elderly care", meta.CareType)
	assert.Equal(t, 350.0, meta.Budget)

	assert.Equal(t, []string{"notification"}, hub.eventsFor(2))

	select {
	case params := <-mail.sent:
		assert.Equal(t, "admin@wellwish.test", params["to_email"])
		assert.Contains(t, params["message"], "Jane Doe")
	case <-time.After(time.Second):
		t.Fatal("application email was not sent")
	}
}

func TestSubmitApplicationDuplicate(t *testing.T) {
	svc, notifs, listings, _, hub, mail := newApplicationFixture(t)

	listings.On("GetByID", uint(30)).Return(carePost(), nil)
	notifs.On("HasApplication", uint(1), uint(30)).Return(true, nil)

	_, err := svc.SubmitApplication(1, 30)
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	// The duplicate is rejected before any insert, push, or email.
	notifs.AssertNotCalled(t, "Create", mock.Anything)
	assert.Empty(t, hub.eventsFor(2))
	select {
	case <-mail.sent:
		t.Fatal("duplicate application must not send email")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubmitApplicationOwnListing(t *testing.T) {
	svc, notifs, listings, _, _, _ := newApplicationFixture(t)

	listings.On("GetByID", uint(30)).Return(carePost(), nil)

	_, err := svc.SubmitApplication(2, 30)
	assert.ErrorIs(t, err, ErrOwnListing)
	notifs.AssertNotCalled(t, "HasApplication", mock.Anything, mock.Anything)
}

func applicationNotification(t *testing.T) *models.Notification {
	t.Helper()
	n := &models.Notification{
		ID:         50,
		SenderID:   1,
		ReceiverID: 2,
		Type:       domain.NotifApplication,
	}
	require.NoError(t, n.SetMeta(models.ApplicationMeta{
		PostID: 30, CareType: "elderly care", Location: "Liberec", Budget: 350, Duration: "2 weeks",
	}))
	return n
}

func TestRejectApplication(t *testing.T) {
	svc, notifs, _, _, hub, _ := newApplicationFixture(t)

	notifs.On("GetByID", uint(50)).Return(applicationNotification(t), nil)

	var outcome *models.Notification
	notifs.On("ReplaceApplication", uint(50), mock.Anything).Run(func(args mock.Arguments) {
		outcome = args.Get(1).(*models.Notification)
	}).Return(nil)

	require.NoError(t, svc.RejectApplication(2, 50))
	require.NotNil(t, outcome)
	assert.Equal(t, domain.NotifApplicationRejected, outcome.Type)
	assert.Equal(t, uint(1), outcome.ReceiverID)
	assert.Equal(t, uint(2), outcome.SenderID)

	meta, err := outcome.ApplicationMeta()
	require.NoError(t, err)
	assert.Equal(t, uint(30), meta.PostID)
	assert.Equal(t, []string{"notification"}, hub.eventsFor(1))
}

func TestRejectApplicationNotOwner(t *testing.T) {
	svc, notifs, _, _, _, _ := newApplicationFixture(t)

	notifs.On("GetByID", uint(50)).Return(applicationNotification(t), nil)

	err := svc.RejectApplication(99, 50)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	notifs.AssertNotCalled(t, "ReplaceApplication", mock.Anything, mock.Anything)
}

func TestFinalizeAccept(t *testing.T) {
	svc, notifs, _, _, hub, _ := newApplicationFixture(t)

	notifs.On("GetByID", uint(50)).Return(applicationNotification(t), nil)

	var outcome *models.Notification
	notifs.On("ReplaceApplication", uint(50), mock.Anything).Run(func(args mock.Arguments) {
		outcome = args.Get(1).(*models.Notification)
	}).Return(nil)

	require.NoError(t, svc.FinalizeAccept(50))
	require.NotNil(t, outcome)
	assert.Equal(t, domain.NotifApplicationAccepted, outcome.Type)
	assert.Equal(t, uint(1), outcome.ReceiverID)
	assert.Equal(t, []string{"notification"}, hub.eventsFor(1))
}

func TestFinalizeAcceptAlreadyConsumed(t *testing.T) {
	svc, notifs, _, _, _, _ := newApplicationFixture(t)

	notifs.On("GetByID", uint(50)).Return(nil, gorm.ErrRecordNotFound)

	// A replayed completion finds the application gone and is a no-op.
	require.NoError(t, svc.FinalizeAccept(50))
	notifs.AssertNotCalled(t, "ReplaceApplication", mock.Anything, mock.Anything)
}

func TestSnapshot(t *testing.T) {
	svc, notifs, _, _, _, _ := newApplicationFixture(t)

	notifs.On("GetByID", uint(50)).Return(applicationNotification(t), nil)

	orig, meta, err := svc.Snapshot(2, 50)
	require.NoError(t, err)
	assert.Equal(t, uint(50), orig.ID)
	assert.Equal(t, 350.0, meta.Budget)
}
