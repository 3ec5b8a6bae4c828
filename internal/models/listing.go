package models

import (
	"time"

	"gorm.io/gorm"
)

// CaregiverListing is an offer of care services, owned by exactly one user.
type CaregiverListing struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	Title           string         `gorm:"size:255;not null" json:"title"`
	Specialization  string         `gorm:"size:255;not null;index" json:"specialization"`
	ExperienceYears int            `json:"experience_years"`
	HourlyRate      float64        `gorm:"not null" json:"hourly_rate"`
	Availability    string         `gorm:"size:64" json:"availability"` // day window, e.g. "Monday - Friday"
	ImageURL        string         `gorm:"size:512" json:"image_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CaregiverListing) TableName() string {
	return "caregiver_listings"
}

// CareseekerListing is a request for care services.
type CareseekerListing struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	CareType  string         `gorm:"size:255;not null;index" json:"care_type"`
	Location  string         `gorm:"size:255;index" json:"location"`
	Budget    float64        `json:"budget"`
	Duration  string         `gorm:"size:64" json:"duration"`
	ImageURL  string         `gorm:"size:512" json:"image_url"`
	Status    string         `gorm:"size:20;not null;default:'active';index" json:"status"` // active | inactive
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CareseekerListing) TableName() string {
	return "careseeker_listings"
}
