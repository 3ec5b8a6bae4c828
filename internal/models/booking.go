package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking tracks a care-seeker's request to engage a caregiver listing.
// Status moves pending -> accepted -> paid, or pending -> rejected; the
// repository enforces transitions with conditional updates.
type Booking struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CaregiverID uint           `gorm:"not null;index" json:"caregiver_id"` // caregiver listing being booked
	SenderID    uint           `gorm:"not null;index" json:"sender_id"`    // care seeker who booked
	Status      string         `gorm:"size:20;not null;index" json:"status"`
	Amount      float64        `gorm:"not null" json:"amount"`
	AcceptedAt  *time.Time     `json:"accepted_at"`
	RejectedAt  *time.Time     `json:"rejected_at"`
	PaidAt      *time.Time     `json:"paid_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Caregiver CaregiverListing `gorm:"foreignKey:CaregiverID" json:"caregiver,omitempty"`
	Sender    User             `gorm:"foreignKey:SenderID" json:"-"`
}

func (Booking) TableName() string {
	return "bookings"
}
