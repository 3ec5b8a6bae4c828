package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"wellwish/internal/middleware"
	"wellwish/internal/models"
	"wellwish/internal/repository"
	"wellwish/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// CaregiverListingHandler serves the caregiver-side listings: offers of care
// that seekers browse and book.
type CaregiverListingHandler struct {
	listings *repository.CaregiverListingRepository
	bookings *repository.BookingRepository
	cloud    cloudinary.Client
}

func NewCaregiverListingHandler(listings *repository.CaregiverListingRepository, bookings *repository.BookingRepository, cloud cloudinary.Client) *CaregiverListingHandler {
	return &CaregiverListingHandler{listings: listings, bookings: bookings, cloud: cloud}
}

// dropImage removes a listing's stored image after the row is gone. Failures
// only leave an orphaned asset behind, so they are logged, not surfaced.
func dropImage(c *gin.Context, cloud cloudinary.Client, imageURL string) {
	if cloud == nil || imageURL == "" {
		return
	}
	if err := cloud.DeleteByURL(c.Request.Context(), imageURL); err != nil {
		log.Printf("[listing] delete image: url=%s err=%v", imageURL, err)
	}
}

type CaregiverListingRequest struct {
	Title           string  `json:"title" binding:"required,min=2,max=255"`
	Specialization  string  `json:"specialization" binding:"required"`
	ExperienceYears int     `json:"experience_years" binding:"min=0"`
	HourlyRate      float64 `json:"hourly_rate" binding:"required,gt=0"`
	Availability    string  `json:"availability"`
	ImageURL        string  `json:"image_url"`
}

func (h *CaregiverListingHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CaregiverListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l := &models.CaregiverListing{
		UserID:          userID,
		Title:           req.Title,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		HourlyRate:      req.HourlyRate,
		Availability:    req.Availability,
		ImageURL:        req.ImageURL,
	}
	if err := h.listings.Create(l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create listing"})
		return
	}
	c.JSON(http.StatusCreated, l)
}

// List browses caregiver listings with optional search/specialization
// filters. When authenticated, each listing carries the caller's latest
// booking status so the frontend can render the right button state.
func (h *CaregiverListingHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	f := repository.CaregiverFilter{
		Search:         c.Query("search"),
		Specialization: c.Query("specialization"),
	}
	list, err := h.listings.List(f, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list"})
		return
	}

	statuses := map[uint]string{}
	if userID := middleware.GetUserID(c); userID != 0 {
		ids := make([]uint, 0, len(list))
		for _, l := range list {
			ids = append(ids, l.ID)
		}
		if m, err := h.bookings.StatusesForListings(userID, ids); err == nil {
			statuses = m
		}
	}
	c.JSON(http.StatusOK, gin.H{"listings": list, "booking_statuses": statuses})
}

func (h *CaregiverListingHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	l, err := h.listings.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *CaregiverListingHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.listings.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CaregiverListingHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	l, err := h.listings.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if l.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}
	var req CaregiverListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l.Title = req.Title
	l.Specialization = req.Specialization
	l.ExperienceYears = req.ExperienceYears
	l.HourlyRate = req.HourlyRate
	l.Availability = req.Availability
	l.ImageURL = req.ImageURL
	if err := h.listings.Update(l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update listing"})
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *CaregiverListingHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var imageURL string
	if l, err := h.listings.GetByID(id); err == nil {
		imageURL = l.ImageURL
	}
	if err := h.listings.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete listing"})
		return
	}
	dropImage(c, h.cloud, imageURL)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// CareseekerListingHandler serves care-needed posts that caregivers browse
// and apply to.
type CareseekerListingHandler struct {
	listings *repository.CareseekerListingRepository
	cloud    cloudinary.Client
}

func NewCareseekerListingHandler(listings *repository.CareseekerListingRepository, cloud cloudinary.Client) *CareseekerListingHandler {
	return &CareseekerListingHandler{listings: listings, cloud: cloud}
}

type CareseekerListingRequest struct {
	Title    string  `json:"title" binding:"required,min=2,max=255"`
	CareType string  `json:"care_type" binding:"required"`
	Location string  `json:"location" binding:"required"`
	Budget   float64 `json:"budget" binding:"required,gt=0"`
	Duration string  `json:"duration"`
	ImageURL string  `json:"image_url"`
}

func (h *CareseekerListingHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CareseekerListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l := &models.CareseekerListing{
		UserID:   userID,
		Title:    req.Title,
		CareType: req.CareType,
		Location: req.Location,
		Budget:   req.Budget,
		Duration: req.Duration,
		ImageURL: req.ImageURL,
	}
	if err := h.listings.Create(l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create listing"})
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *CareseekerListingHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	f := repository.CareseekerFilter{
		Search:   c.Query("search"),
		CareType: c.Query("care_type"),
		Location: c.Query("location"),
	}
	list, err := h.listings.List(f, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CareseekerListingHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	l, err := h.listings.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *CareseekerListingHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	list, err := h.listings.ListByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CareseekerListingHandler) Update(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	l, err := h.listings.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if l.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return
	}
	var req CareseekerListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l.Title = req.Title
	l.CareType = req.CareType
	l.Location = req.Location
	l.Budget = req.Budget
	l.Duration = req.Duration
	l.ImageURL = req.ImageURL
	if err := h.listings.Update(l); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update listing"})
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *CareseekerListingHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var imageURL string
	if l, err := h.listings.GetByID(id); err == nil {
		imageURL = l.ImageURL
	}
	if err := h.listings.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete listing"})
		return
	}
	dropImage(c, h.cloud, imageURL)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
