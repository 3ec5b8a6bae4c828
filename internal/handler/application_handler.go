package handler

import (
	"errors"
	"net/http"

	"wellwish/internal/middleware"
	"wellwish/internal/service"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	svc *service.ApplicationService
}

func NewApplicationHandler(svc *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type SubmitApplicationRequest struct {
	ListingID uint `json:"listing_id" binding:"required"`
}

func applicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrListingNotFound), errors.Is(err, service.ErrNotificationGone):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOwnListing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "application operation failed"})
	}
}

// Submit applies the caller to a careseeker listing. Duplicate applications
// for the same listing are rejected with 409.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := h.svc.SubmitApplication(userID, req.ListingID)
	if err != nil {
		applicationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

// Reject declines the application behind the notification id.
func (h *ApplicationHandler) Reject(c *gin.Context) {
	userID := middleware.GetUserID(c)
	notifID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RejectApplication(userID, notifID); err != nil {
		applicationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "rejected"})
}
