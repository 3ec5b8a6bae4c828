package repository

import (
	"wellwish/internal/domain"
	"wellwish/internal/models"

	"gorm.io/gorm"
)

// CaregiverFilter narrows caregiver listing browsing.
type CaregiverFilter struct {
	Search         string
	Specialization string
}

// CareseekerFilter narrows careseeker listing browsing.
type CareseekerFilter struct {
	Search   string
	CareType string
	Location string
}

type CaregiverListingRepository struct {
	db *gorm.DB
}

func NewCaregiverListingRepository(db *gorm.DB) *CaregiverListingRepository {
	return &CaregiverListingRepository{db: db}
}

func (r *CaregiverListingRepository) Create(l *models.CaregiverListing) error {
	return r.db.Create(l).Error
}

func (r *CaregiverListingRepository) GetByID(id uint) (*models.CaregiverListing, error) {
	var l models.CaregiverListing
	if err := r.db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *CaregiverListingRepository) List(f CaregiverFilter, limit, offset int) ([]models.CaregiverListing, error) {
	q := r.db.Model(&models.CaregiverListing{})
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR specialization LIKE ?", like, like)
	}
	if f.Specialization != "" {
		q = q.Where("specialization = ?", f.Specialization)
	}
	var list []models.CaregiverListing
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *CaregiverListingRepository) ListByUserID(userID uint) ([]models.CaregiverListing, error) {
	var list []models.CaregiverListing
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *CaregiverListingRepository) Update(l *models.CaregiverListing) error {
	return r.db.Save(l).Error
}

// Delete removes the listing if owned by userID; returns gorm.ErrRecordNotFound otherwise.
func (r *CaregiverListingRepository) Delete(id, userID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CaregiverListing{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type CareseekerListingRepository struct {
	db *gorm.DB
}

func NewCareseekerListingRepository(db *gorm.DB) *CareseekerListingRepository {
	return &CareseekerListingRepository{db: db}
}

func (r *CareseekerListingRepository) Create(l *models.CareseekerListing) error {
	if l.Status == "" {
		l.Status = domain.ListingStatusActive
	}
	return r.db.Create(l).Error
}

func (r *CareseekerListingRepository) GetByID(id uint) (*models.CareseekerListing, error) {
	var l models.CareseekerListing
	if err := r.db.First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *CareseekerListingRepository) List(f CareseekerFilter, limit, offset int) ([]models.CareseekerListing, error) {
	q := r.db.Model(&models.CareseekerListing{}).Where("status = ?", domain.ListingStatusActive)
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR care_type LIKE ?", like, like)
	}
	if f.CareType != "" {
		q = q.Where("care_type = ?", f.CareType)
	}
	if f.Location != "" {
		q = q.Where("location LIKE ?", "%"+f.Location+"%")
	}
	var list []models.CareseekerListing
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *CareseekerListingRepository) ListByUserID(userID uint) ([]models.CareseekerListing, error) {
	var list []models.CareseekerListing
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *CareseekerListingRepository) Update(l *models.CareseekerListing) error {
	return r.db.Save(l).Error
}

func (r *CareseekerListingRepository) Delete(id, userID uint) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CareseekerListing{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
