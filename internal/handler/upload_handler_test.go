package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"wellwish/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloud struct {
	uploads int
}

func (f *fakeCloud) UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, string, error) {
	f.uploads++
	return "https://res.cloudinary.test/img", "https://res.cloudinary.test/thumb", nil
}

func (f *fakeCloud) DeleteByURL(ctx context.Context, url string) error { return nil }

func uploadRouter(cloud *fakeCloud) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUploadHandler(cloud)
	r.POST("/upload", func(c *gin.Context) {
		c.Set("user_id", uint(1))
		h.Image(c)
	})
	return r
}

func multipartImage(t *testing.T, filename string, size int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUploadImage(t *testing.T) {
	cloud := &fakeCloud{}
	r := uploadRouter(cloud)

	body, contentType := multipartImage(t, "photo.jpg", 1024)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, cloud.uploads)
	assert.Contains(t, rec.Body.String(), "res.cloudinary.test")
}

func TestUploadImageTooLarge(t *testing.T) {
	cloud := &fakeCloud{}
	r := uploadRouter(cloud)

	body, contentType := multipartImage(t, "photo.jpg", int(domain.MaxImageUploadBytes)+1)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// Rejected before any bytes reach storage.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, cloud.uploads)
}

func TestUploadImageBadExtension(t *testing.T) {
	cloud := &fakeCloud{}
	r := uploadRouter(cloud)

	body, contentType := multipartImage(t, "script.exe", 1024)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, cloud.uploads)
}

func TestUploadImageMissingFile(t *testing.T) {
	cloud := &fakeCloud{}
	r := uploadRouter(cloud)

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
