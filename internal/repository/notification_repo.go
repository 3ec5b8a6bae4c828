package repository

import (
	"wellwish/internal/domain"
	"wellwish/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListByReceiverID(receiverID uint, limit, offset int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("receiver_id = ?", receiverID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

func (r *NotificationRepository) UnreadCount(receiverID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Notification{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).Count(&c).Error
	return c, err
}

func (r *NotificationRepository) MarkRead(id, receiverID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Update("is_read", true).Error
}

// MarkChatRead marks chat_message notifications from sender as read (called
// when the receiver opens the conversation).
func (r *NotificationRepository) MarkChatRead(senderID, receiverID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("sender_id = ? AND receiver_id = ? AND type = ?", senderID, receiverID, domain.NotifChatMessage).
		Update("is_read", true).Error
}

// HasApplication reports whether the sender already holds an application
// notification for the listing. Server-side duplicate guard; the original
// only tracked this in browser-local storage.
func (r *NotificationRepository) HasApplication(senderID, postID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.Notification{}).
		Where("sender_id = ? AND type = ? AND JSON_EXTRACT(metadata, '$.post_id') = ?",
			senderID, domain.NotifApplication, postID).
		Count(&c).Error
	return c > 0, err
}

// ReplaceApplication inserts the accept/reject outcome notification and
// hard-deletes the originating application notification atomically, so a
// successful transition never leaves the original behind.
func (r *NotificationRepository) ReplaceApplication(originalID uint, outcome *models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(outcome).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Notification{}, originalID).Error
	})
}
