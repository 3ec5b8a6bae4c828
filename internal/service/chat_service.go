package service

import (
	"errors"
	"unicode/utf8"

	"wellwish/internal/domain"
	"wellwish/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

const chatPreviewLen = 80

// ChatService handles point-to-point messages. Each send persists the
// message and a chat_message notification together, then pushes both over
// the realtime bridge; a receiver who is offline recovers them on the next
// conversation fetch.
type ChatService struct {
	messages MessageStore
	notifs   NotificationStore
	users    UserStore
	hub      Pusher
}

func NewChatService(messages MessageStore, notifs NotificationStore, users UserStore, hub Pusher) *ChatService {
	return &ChatService{messages: messages, notifs: notifs, users: users, hub: hub}
}

// preview truncates on a rune boundary so a multi-byte character is never
// split into invalid UTF-8.
func preview(content string) string {
	if len(content) <= chatPreviewLen {
		return content
	}
	cut := chatPreviewLen
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut]
}

// SendMessage persists and pushes a chat line. clientRef, when set, is
// echoed back on the stored message and the realtime event so the sender's
// optimistic UI entry can be reconciled with the store-assigned row.
func (s *ChatService) SendMessage(senderID, receiverID uint, content, clientRef string) (*models.Message, error) {
	senderName := "A user"
	if u, err := s.users.GetByID(senderID); err == nil && u.FullName != "" {
		senderName = u.FullName
	}
	m := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	n := &models.Notification{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Type:       domain.NotifChatMessage,
		Message:    senderName + " sent you a message",
	}
	if err := n.SetMeta(models.ChatMeta{SenderName: senderName, Preview: preview(content)}); err != nil {
		return nil, err
	}
	if err := s.messages.CreateWithNotification(m, n); err != nil {
		return nil, err
	}
	m.ClientRef = clientRef
	s.hub.PushToUser(receiverID, "message", m)
	s.hub.PushToUser(receiverID, "notification", n)
	return m, nil
}

// Conversation returns the pair history and marks the other side's messages
// (and their chat notifications) read for the caller.
func (s *ChatService) Conversation(userID, otherID uint, limit, offset int) ([]models.Message, error) {
	list, err := s.messages.Conversation(userID, otherID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.messages.MarkReadFrom(otherID, userID); err != nil {
		return nil, err
	}
	_ = s.notifs.MarkChatRead(otherID, userID)
	return list, nil
}

// DeleteMessage removes a message the caller sent.
func (s *ChatService) DeleteMessage(id, senderID uint) error {
	err := s.messages.DeleteOwn(id, senderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrMessageNotFound
	}
	return err
}
