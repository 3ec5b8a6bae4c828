package handler

import (
	"errors"
	"net/http"

	"wellwish/internal/middleware"
	"wellwish/internal/repository"
	"wellwish/internal/service"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	svc      *service.BookingService
	bookings *repository.BookingRepository
}

func NewBookingHandler(svc *service.BookingService, bookings *repository.BookingRepository) *BookingHandler {
	return &BookingHandler{svc: svc, bookings: bookings}
}

type CreateBookingRequest struct {
	ListingID uint `json:"listing_id" binding:"required"`
}

func bookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrListingNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrNotificationGone):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOwnListing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrStatusConflict), errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "booking already actioned"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "booking operation failed"})
	}
}

// Create books a caregiver listing for the caller at its hourly rate.
func (h *BookingHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.CreateBooking(userID, req.ListingID)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// Accept resolves a booking_request notification in the caller's favor.
func (h *BookingHandler) Accept(c *gin.Context) {
	h.respond(c, true)
}

// Reject declines the booking behind a booking_request notification.
func (h *BookingHandler) Reject(c *gin.Context) {
	h.respond(c, false)
}

func (h *BookingHandler) respond(c *gin.Context, accept bool) {
	userID := middleware.GetUserID(c)
	notifID, ok := idParam(c, "id")
	if !ok {
		return
	}
	b, err := h.svc.RespondToBooking(userID, notifID, accept)
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListMine returns bookings the caller made (role=sent, default) or bookings
// against the caller's listings (role=received).
func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	var (
		list interface{}
		err  error
	)
	if c.DefaultQuery("role", "sent") == "received" {
		list, err = h.bookings.ListForCaregiverOwner(userID, limit, offset)
	} else {
		list, err = h.bookings.ListBySenderID(userID, limit, offset)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one booking; only the two parties may read it.
func (h *BookingHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	b, err := h.bookings.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if b.SenderID != userID && b.Caregiver.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	c.JSON(http.StatusOK, b)
}
