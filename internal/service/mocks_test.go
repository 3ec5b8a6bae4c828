package service

import (
	"context"
	"sync"

	"wellwish/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) CreateWithNotification(b *models.Booking, n *models.Notification) error {
	return m.Called(b, n).Error(0)
}

func (m *mockBookingStore) GetByID(id uint) (*models.Booking, error) {
	args := m.Called(id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *mockBookingStore) Transition(bookingID uint, expected, next string, deleteNotifID uint, notifs ...*models.Notification) error {
	return m.Called(bookingID, expected, next, deleteNotifID, notifs).Error(0)
}

type mockNotificationStore struct{ mock.Mock }

func (m *mockNotificationStore) Create(n *models.Notification) error {
	return m.Called(n).Error(0)
}

func (m *mockNotificationStore) GetByID(id uint) (*models.Notification, error) {
	args := m.Called(id)
	n, _ := args.Get(0).(*models.Notification)
	return n, args.Error(1)
}

func (m *mockNotificationStore) HasApplication(senderID, postID uint) (bool, error) {
	args := m.Called(senderID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *mockNotificationStore) ReplaceApplication(originalID uint, outcome *models.Notification) error {
	return m.Called(originalID, outcome).Error(0)
}

func (m *mockNotificationStore) MarkChatRead(senderID, receiverID uint) error {
	return m.Called(senderID, receiverID).Error(0)
}

type mockMessageStore struct{ mock.Mock }

func (m *mockMessageStore) CreateWithNotification(msg *models.Message, n *models.Notification) error {
	return m.Called(msg, n).Error(0)
}

func (m *mockMessageStore) Conversation(userA, userB uint, limit, offset int) ([]models.Message, error) {
	args := m.Called(userA, userB, limit, offset)
	list, _ := args.Get(0).([]models.Message)
	return list, args.Error(1)
}

func (m *mockMessageStore) MarkReadFrom(senderID, receiverID uint) error {
	return m.Called(senderID, receiverID).Error(0)
}

func (m *mockMessageStore) DeleteOwn(id, senderID uint) error {
	return m.Called(id, senderID).Error(0)
}

type mockCaregiverListingStore struct{ mock.Mock }

func (m *mockCaregiverListingStore) GetByID(id uint) (*models.CaregiverListing, error) {
	args := m.Called(id)
	l, _ := args.Get(0).(*models.CaregiverListing)
	return l, args.Error(1)
}

type mockCareseekerListingStore struct{ mock.Mock }

func (m *mockCareseekerListingStore) GetByID(id uint) (*models.CareseekerListing, error) {
	args := m.Called(id)
	l, _ := args.Get(0).(*models.CareseekerListing)
	return l, args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

type mockProfileStore struct{ mock.Mock }

func (m *mockProfileStore) GetOrCreateByUserID(userID uint) (*models.Profile, error) {
	args := m.Called(userID)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

type mockPaymentStore struct{ mock.Mock }

func (m *mockPaymentStore) Create(p *models.Payment) error {
	return m.Called(p).Error(0)
}

func (m *mockPaymentStore) GetByProviderRef(ref string) (*models.Payment, error) {
	args := m.Called(ref)
	p, _ := args.Get(0).(*models.Payment)
	return p, args.Error(1)
}

func (m *mockPaymentStore) CompleteByRef(ref string) (bool, *models.Payment, error) {
	args := m.Called(ref)
	p, _ := args.Get(1).(*models.Payment)
	return args.Bool(0), p, args.Error(2)
}

func (m *mockPaymentStore) ReopenByRef(ref string) error {
	return m.Called(ref).Error(0)
}

// recordingPusher captures realtime pushes per user for assertions.
type recordingPusher struct {
	mu     sync.Mutex
	pushes map[uint][]string // userID -> event names
}

func newRecordingPusher() *recordingPusher {
	return &recordingPusher{pushes: make(map[uint][]string)}
}

func (p *recordingPusher) PushToUser(userID uint, event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes[userID] = append(p.pushes[userID], event)
}

func (p *recordingPusher) eventsFor(userID uint) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.pushes[userID]...)
}

// recordingMailer signals each send on a channel so tests can wait for the
// fire-and-forget goroutine.
type recordingMailer struct {
	sent chan map[string]string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{sent: make(chan map[string]string, 4)}
}

func (m *recordingMailer) Send(ctx context.Context, params map[string]string) error {
	m.sent <- params
	return nil
}
