package cloudinary

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Client wraps Cloudinary upload and URL generation with optimization.
// Listing records always store the resolved secure URL, never a raw file.
type Client interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url, thumbnailURL string, err error)
	DeleteByURL(ctx context.Context, url string) error
}

// Optimized image params for fast frontend loading
const (
	ImageWidth = 800
	ThumbWidth = 200
)

// Eager transformation for upload (single string per SDK)
const imageEager = "q_auto,f_auto,w_800,c_fill"

var eagerAsyncFalse = false

// BuildOptimizedImageURL returns a Cloudinary URL with transformations for optimized delivery.
func BuildOptimizedImageURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = ImageWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}

type clientImpl struct {
	cloudName string
	uploader  *uploader.API
}

// UploadImage uploads an image with eager optimizations (auto quality, format, resize).
func (c *clientImpl) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (url, thumbnailURL string, err error) {
	result, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:     folder,
		PublicID:   publicID,
		Eager:      imageEager,
		EagerAsync: &eagerAsyncFalse,
	})
	if err != nil {
		return "", "", err
	}
	url = result.SecureURL
	if len(result.Eager) > 0 {
		thumbnailURL = result.Eager[0].SecureURL
	}
	if thumbnailURL == "" {
		thumbnailURL = BuildOptimizedImageURL(c.cloudName, result.PublicID, ThumbWidth)
	}
	return url, thumbnailURL, nil
}

// PublicIDFromURL recovers the public_id from a Cloudinary delivery URL:
// .../image/upload/[<transformations>/][v<N>/]<folder...>/<name>.<ext>.
// Returns "" when the URL is not a Cloudinary delivery URL.
func PublicIDFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	idx := -1
	for i, p := range parts {
		if p == "upload" {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= len(parts) {
		return ""
	}
	rest := parts[idx+1:]
	for len(rest) > 1 && (strings.Contains(rest[0], ",") || isVersionSegment(rest[0])) {
		rest = rest[1:]
	}
	id := strings.Join(rest, "/")
	if dot := strings.LastIndex(id, "."); dot > strings.LastIndex(id, "/") {
		id = id[:dot]
	}
	return id
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DeleteByURL removes the asset behind a delivery URL; unknown URLs are a
// no-op so callers can pass whatever the listing stored.
func (c *clientImpl) DeleteByURL(ctx context.Context, rawURL string) error {
	publicID := PublicIDFromURL(rawURL)
	if publicID == "" {
		return nil
	}
	_, err := c.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{
		cloudName: cloudName,
		uploader:  up,
	}, nil
}
