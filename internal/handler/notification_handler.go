package handler

import (
	"net/http"

	"wellwish/internal/middleware"
	"wellwish/internal/repository"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifs *repository.NotificationRepository
}

func NewNotificationHandler(notifs *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifs: notifs}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	list, err := h.notifs.ListByReceiverID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	count, err := h.notifs.UnreadCount(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// MarkRead marks one of the caller's notifications read. Marking someone
// else's notification is a silent no-op (zero rows match).
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.notifs.MarkRead(id, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
