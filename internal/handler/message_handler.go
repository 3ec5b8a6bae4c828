package handler

import (
	"errors"
	"net/http"

	"wellwish/internal/middleware"
	"wellwish/internal/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	svc *service.ChatService
}

func NewMessageHandler(svc *service.ChatService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required,min=1,max=5000"`
	ClientRef  string `json:"client_ref"`
}

// Send persists a chat message and pushes it to the receiver. client_ref is
// echoed back so the sender can reconcile its optimistic UI entry.
func (h *MessageHandler) Send(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ReceiverID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot message yourself"})
		return
	}
	m, err := h.svc.SendMessage(userID, req.ReceiverID, req.Content, req.ClientRef)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Conversation returns the history between the caller and :user_id and marks
// the other side's messages read.
func (h *MessageHandler) Conversation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	otherID, ok := idParam(c, "user_id")
	if !ok {
		return
	}
	limit, offset := pagination(c)
	list, err := h.svc.Conversation(userID, otherID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversation"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Delete removes a message the caller sent.
func (h *MessageHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteMessage(id, userID); err != nil {
		if errors.Is(err, service.ErrMessageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
