package handler

import (
	"net/http"

	"wellwish/internal/middleware"
	"wellwish/internal/models"
	"wellwish/internal/repository"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles *repository.ProfileRepository
}

func NewProfileHandler(profiles *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type UpdateProfileRequest struct {
	FullName      string   `json:"full_name"`
	Bio           string   `json:"bio"`
	ContactNumber string   `json:"contact_number"`
	Location      string   `json:"location"`
	AvatarURL     string   `json:"avatar_url"`
	Skills        []string `json:"skills"`
	Occupations   []string `json:"occupations"`
	Languages     []string `json:"languages"`
}

// GetMine returns the caller's profile, creating an empty one on first
// access.
func (h *ProfileHandler) GetMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	p, err := h.profiles.GetOrCreateByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateMine replaces the caller's profile fields. Owner-only by
// construction: the row is looked up by the authenticated user id.
func (h *ProfileHandler) UpdateMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := h.profiles.GetOrCreateByUserID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}
	p.FullName = req.FullName
	p.Bio = req.Bio
	p.ContactNumber = req.ContactNumber
	p.Location = req.Location
	p.AvatarURL = req.AvatarURL
	p.Skills = models.StringList(req.Skills)
	p.Occupations = models.StringList(req.Occupations)
	p.Languages = models.StringList(req.Languages)
	if err := h.profiles.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, p)
}
