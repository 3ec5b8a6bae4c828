package repository

import (
	"time"

	"wellwish/internal/domain"
	"wellwish/internal/models"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByProviderRef(ref string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.Where("provider_ref = ?", ref).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CompleteByRef flips the record to COMPLETED only if still PENDING; the
// zero-rows case makes webhook replays no-ops. Returns whether this call
// performed the completion.
func (r *PaymentRepository) CompleteByRef(ref string) (bool, *models.Payment, error) {
	now := time.Now()
	res := r.db.Model(&models.Payment{}).
		Where("provider_ref = ? AND status = ?", ref, domain.PaymentStatusPending).
		Updates(map[string]interface{}{"status": domain.PaymentStatusCompleted, "completed_at": now})
	if res.Error != nil {
		return false, nil, res.Error
	}
	p, err := r.GetByProviderRef(ref)
	if err != nil {
		return false, nil, err
	}
	return res.RowsAffected > 0, p, nil
}

// ReopenByRef reverts a completion whose downstream workflow transition
// failed, so the gateway's retry runs the transition again instead of
// hitting the replay no-op.
func (r *PaymentRepository) ReopenByRef(ref string) error {
	return r.db.Model(&models.Payment{}).
		Where("provider_ref = ? AND status = ?", ref, domain.PaymentStatusCompleted).
		Updates(map[string]interface{}{"status": domain.PaymentStatusPending, "completed_at": nil}).Error
}

func (r *PaymentRepository) FailByRef(ref string) error {
	return r.db.Model(&models.Payment{}).
		Where("provider_ref = ? AND status = ?", ref, domain.PaymentStatusPending).
		Update("status", domain.PaymentStatusFailed).Error
}
