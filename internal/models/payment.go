package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment records a gateway charge attempt. ProviderRef is the gateway's
// session or intent id; completion is idempotent on it.
type Payment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	AmountCents    int64          `gorm:"not null" json:"amount_cents"`
	Currency       string         `gorm:"size:3;default:'USD'" json:"currency"`
	Provider       string         `gorm:"size:50;not null" json:"provider"`
	ProviderRef    string         `gorm:"size:255;uniqueIndex" json:"provider_ref"`
	Status         string         `gorm:"size:20;not null;index" json:"status"`
	Purpose        string         `gorm:"size:20;not null;index" json:"purpose"` // booking | application
	BookingID      *uint          `gorm:"index" json:"booking_id,omitempty"`
	NotificationID *uint          `gorm:"index" json:"notification_id,omitempty"` // application notification being accepted
	IdempotencyKey string         `gorm:"size:255;uniqueIndex" json:"-"`
	CompletedAt    *time.Time     `json:"completed_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
