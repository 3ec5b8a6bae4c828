package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wellwish/internal/domain"

	"gorm.io/gorm"
)

// Notification is a typed event record delivered to a receiver. It drives
// both UI alerts and workflow state: applications live entirely as
// notifications, and booking transitions are audited through them.
type Notification struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SenderID   uint           `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint           `gorm:"not null;index" json:"receiver_id"`
	Type       string         `gorm:"size:50;not null;index" json:"type"`
	Message    string         `gorm:"type:text" json:"message"`
	BookingID  *uint          `gorm:"index" json:"booking_id,omitempty"`
	Metadata   string         `gorm:"type:text" json:"metadata,omitempty"` // JSON, shape keyed by Type
	IsRead     bool           `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

var ErrMetaTypeMismatch = errors.New("notification metadata does not match notification type")

// BookingMeta is the metadata payload for booking_* and payment_required
// notifications.
type BookingMeta struct {
	BookingID uint    `json:"booking_id"`
	Amount    float64 `json:"amount"`
}

// ApplicationMeta snapshots the careseeker listing at application time so
// later acceptance or rejection does not need to re-fetch the listing.
type ApplicationMeta struct {
	PostID   uint    `json:"post_id"`
	CareType string  `json:"care_type"`
	Location string  `json:"location"`
	Budget   float64 `json:"budget"`
	Duration string  `json:"duration"`
}

// ChatMeta is the metadata payload for chat_message notifications.
type ChatMeta struct {
	SenderName string `json:"sender_name"`
	Preview    string `json:"preview"`
}

func metaTypeFor(notifType string) string {
	switch notifType {
	case domain.NotifBookingRequest, domain.NotifBookingAccepted, domain.NotifBookingRejected,
		domain.NotifPaymentRequired, domain.NotifBookingPaid:
		return "booking"
	case domain.NotifApplication, domain.NotifApplicationAccepted, domain.NotifApplicationRejected:
		return "application"
	case domain.NotifChatMessage:
		return "chat"
	}
	return ""
}

// SetMeta encodes a typed metadata payload, rejecting payloads that do not
// belong to the notification's type.
func (n *Notification) SetMeta(meta interface{}) error {
	if meta == nil {
		n.Metadata = ""
		return nil
	}
	var kind string
	switch meta.(type) {
	case BookingMeta, *BookingMeta:
		kind = "booking"
	case ApplicationMeta, *ApplicationMeta:
		kind = "application"
	case ChatMeta, *ChatMeta:
		kind = "chat"
	default:
		return fmt.Errorf("notification metadata: unsupported payload %T", meta)
	}
	if kind != metaTypeFor(n.Type) {
		return ErrMetaTypeMismatch
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	n.Metadata = string(b)
	return nil
}

// BookingMeta decodes the metadata of a booking-flavored notification.
func (n *Notification) BookingMeta() (*BookingMeta, error) {
	if metaTypeFor(n.Type) != "booking" {
		return nil, ErrMetaTypeMismatch
	}
	var m BookingMeta
	if err := json.Unmarshal([]byte(n.Metadata), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ApplicationMeta decodes the metadata of an application-flavored
// notification.
func (n *Notification) ApplicationMeta() (*ApplicationMeta, error) {
	if metaTypeFor(n.Type) != "application" {
		return nil, ErrMetaTypeMismatch
	}
	var m ApplicationMeta
	if err := json.Unmarshal([]byte(n.Metadata), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// ChatMeta decodes the metadata of a chat_message notification.
func (n *Notification) ChatMeta() (*ChatMeta, error) {
	if metaTypeFor(n.Type) != "chat" {
		return nil, ErrMetaTypeMismatch
	}
	var m ChatMeta
	if err := json.Unmarshal([]byte(n.Metadata), &m); err != nil {
		return nil, err
	}
	return &m, nil
}
