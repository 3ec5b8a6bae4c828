package service

import "wellwish/internal/models"

// Store interfaces consumed by the workflow coordinators. The repository
// package provides the GORM-backed implementations; tests provide mocks.

type BookingStore interface {
	CreateWithNotification(b *models.Booking, n *models.Notification) error
	GetByID(id uint) (*models.Booking, error)
	Transition(bookingID uint, expected, next string, deleteNotifID uint, notifs ...*models.Notification) error
}

type NotificationStore interface {
	Create(n *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	HasApplication(senderID, postID uint) (bool, error)
	ReplaceApplication(originalID uint, outcome *models.Notification) error
	MarkChatRead(senderID, receiverID uint) error
}

type MessageStore interface {
	CreateWithNotification(m *models.Message, n *models.Notification) error
	Conversation(userA, userB uint, limit, offset int) ([]models.Message, error)
	MarkReadFrom(senderID, receiverID uint) error
	DeleteOwn(id, senderID uint) error
}

type CaregiverListingStore interface {
	GetByID(id uint) (*models.CaregiverListing, error)
}

type CareseekerListingStore interface {
	GetByID(id uint) (*models.CareseekerListing, error)
}

type UserStore interface {
	GetByID(id uint) (*models.User, error)
}

type ProfileStore interface {
	GetOrCreateByUserID(userID uint) (*models.Profile, error)
}

type PaymentStore interface {
	Create(p *models.Payment) error
	GetByProviderRef(ref string) (*models.Payment, error)
	CompleteByRef(ref string) (bool, *models.Payment, error)
	ReopenByRef(ref string) error
}

// Pusher is the realtime bridge surface; the ws hub implements it.
type Pusher interface {
	PushToUser(userID uint, event string, data interface{})
}
