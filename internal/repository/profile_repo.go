package repository

import (
	"errors"

	"wellwish/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetOrCreateByUserID returns the user's profile, creating an empty one on
// first access (profiles are lazy).
func (r *ProfileRepository) GetOrCreateByUserID(userID uint) (*models.Profile, error) {
	var p models.Profile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.Profile{UserID: userID}
		if err := r.db.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var p models.Profile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(p *models.Profile) error {
	return r.db.Save(p).Error
}
