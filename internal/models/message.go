package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a point-to-point chat line between two users.
type Message struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	SenderID   uint           `gorm:"not null;index" json:"sender_id"`
	ReceiverID uint           `gorm:"not null;index" json:"receiver_id"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	IsRead     bool           `gorm:"not null;default:false" json:"is_read"`
	ClientRef  string         `gorm:"-" json:"client_ref,omitempty"` // echoed back so optimistic UI entries can reconcile
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Sender   User `gorm:"foreignKey:SenderID" json:"-"`
	Receiver User `gorm:"foreignKey:ReceiverID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
