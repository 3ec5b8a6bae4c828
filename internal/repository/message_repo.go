package repository

import (
	"wellwish/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// CreateWithNotification inserts the message and its chat_message
// notification in one transaction.
func (r *MessageRepository) CreateWithNotification(m *models.Message, n *models.Notification) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		return tx.Create(n).Error
	})
}

// Conversation returns the pair-scoped history in both directions, oldest
// first.
func (r *MessageRepository) Conversation(userA, userB uint, limit, offset int) ([]models.Message, error) {
	var list []models.Message
	err := r.db.Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA).
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// MarkReadFrom marks messages from sender to receiver as read.
func (r *MessageRepository) MarkReadFrom(senderID, receiverID uint) error {
	return r.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true).Error
}

// DeleteOwn soft-deletes a message if owned by senderID.
func (r *MessageRepository) DeleteOwn(id, senderID uint) error {
	res := r.db.Where("id = ? AND sender_id = ?", id, senderID).Delete(&models.Message{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
