package repository

import (
	"errors"
	"time"

	"wellwish/internal/domain"
	"wellwish/internal/models"

	"gorm.io/gorm"
)

// ErrStatusConflict is returned when a conditional status update loses a
// race: the booking was not in the expected status at update time.
var ErrStatusConflict = errors.New("booking status conflict")

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateWithNotification inserts the booking and its booking_request
// notification atomically, so a failed notification insert cannot leave an
// orphaned booking.
func (r *BookingRepository) CreateWithNotification(b *models.Booking, n *models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		n.BookingID = &b.ID
		meta := models.BookingMeta{BookingID: b.ID, Amount: b.Amount}
		if err := n.SetMeta(meta); err != nil {
			return err
		}
		return tx.Create(n).Error
	})
}

func (r *BookingRepository) GetByID(id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.Preload("Caregiver").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListBySenderID(senderID uint, limit, offset int) ([]models.Booking, error) {
	var list []models.Booking
	err := r.db.Where("sender_id = ?", senderID).Preload("Caregiver").
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *BookingRepository) ListForCaregiverOwner(ownerID uint, limit, offset int) ([]models.Booking, error) {
	var list []models.Booking
	err := r.db.Joins("JOIN caregiver_listings cl ON cl.id = bookings.caregiver_id").
		Where("cl.user_id = ?", ownerID).Preload("Caregiver").
		Order("bookings.created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// statusTimestampColumn maps a new status to the timestamp column recorded
// with the transition.
func statusTimestampColumn(status string) string {
	switch status {
	case domain.BookingStatusAccepted:
		return "accepted_at"
	case domain.BookingStatusRejected:
		return "rejected_at"
	case domain.BookingStatusPaid:
		return "paid_at"
	}
	return ""
}

func casUpdate(tx *gorm.DB, bookingID uint, expected, next string) error {
	updates := map[string]interface{}{"status": next}
	if col := statusTimestampColumn(next); col != "" {
		updates[col] = time.Now()
	}
	res := tx.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, expected).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// Transition performs a conditional status update (only if the current
// status equals expected), inserts the transition notifications, and deletes
// the originating notification if any — all in one transaction. Returns
// ErrStatusConflict when the booking was not in the expected status.
func (r *BookingRepository) Transition(bookingID uint, expected, next string, deleteNotifID uint, notifs ...*models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := casUpdate(tx, bookingID, expected, next); err != nil {
			return err
		}
		for _, n := range notifs {
			if err := tx.Create(n).Error; err != nil {
				return err
			}
		}
		if deleteNotifID != 0 {
			if err := tx.Unscoped().Delete(&models.Notification{}, deleteNotifID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// StatusesForListings returns the latest booking status per caregiver
// listing booked by senderID (drives the "Book Now" button state).
func (r *BookingRepository) StatusesForListings(senderID uint, listingIDs []uint) (map[uint]string, error) {
	if len(listingIDs) == 0 {
		return map[uint]string{}, nil
	}
	var rows []models.Booking
	err := r.db.Where("sender_id = ? AND caregiver_id IN ?", senderID, listingIDs).
		Order("created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]string, len(rows))
	for _, b := range rows {
		out[b.CaregiverID] = b.Status
	}
	return out, nil
}
