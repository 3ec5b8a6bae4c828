package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"wellwish/internal/domain"
	"wellwish/internal/middleware"
	"wellwish/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	cloud cloudinary.Client
}

func NewUploadHandler(cloud cloudinary.Client) *UploadHandler {
	return &UploadHandler{cloud: cloud}
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// Image accepts a multipart "image" file, enforces the size cap before any
// bytes leave the server, and returns the hosted URL.
func (h *UploadHandler) Image(c *gin.Context) {
	userID := middleware.GetUserID(c)
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}
	if file.Size > domain.MaxImageUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("image exceeds %dMB limit", domain.MaxImageUploadBytes>>20)})
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
		return
	}
	defer src.Close()

	publicID := fmt.Sprintf("u%d_%s", userID, uuid.NewString())
	url, thumb, err := h.cloud.UploadImage(c.Request.Context(), src, "wellwish/listings", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "thumbnail_url": thumb})
}
