package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds extended user metadata. Created lazily on first profile
// fetch; only the owner may mutate it.
type Profile struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName      string         `gorm:"size:255" json:"full_name"`
	Bio           string         `gorm:"type:text" json:"bio"`
	ContactNumber string         `gorm:"size:32" json:"contact_number"`
	Location      string         `gorm:"size:255" json:"location"`
	AvatarURL     string         `gorm:"size:512" json:"avatar_url"`
	Skills        StringList     `gorm:"type:text" json:"skills"`
	Occupations   StringList     `gorm:"type:text" json:"occupations"`
	Languages     StringList     `gorm:"type:text" json:"languages"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}
