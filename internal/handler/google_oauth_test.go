package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"wellwish/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oauthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewGoogleOAuthHandler(cfg, nil)
	r.GET("/auth/google", h.Redirect)
	r.GET("/auth/google/callback", h.Callback)
	return r
}

func oauthConfig() *config.Config {
	return &config.Config{
		OAuth: config.OAuthConfig{
			GoogleClientID:     "client-id",
			GoogleClientSecret: "client-secret",
			GoogleRedirectURL:  "http://localhost:8080/api/v1/auth/google/callback",
		},
	}
}

func TestGoogleRedirectUsesRandomState(t *testing.T) {
	r := oauthRouter(oauthConfig())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	require.Equal(t, http.StatusFound, rec.Code)

	var cookieState string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == oauthStateCookie {
			cookieState = ck.Value
		}
	}
	require.NotEmpty(t, cookieState)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, cookieState, loc.Query().Get("state"))

	// A second flow gets a fresh value.
	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	loc2, err := url.Parse(rec2.Header().Get("Location"))
	require.NoError(t, err)
	assert.NotEqual(t, cookieState, loc2.Query().Get("state"))
}

func TestGoogleCallbackRejectsStateMismatch(t *testing.T) {
	r := oauthRouter(oauthConfig())

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=abc&state=wrong", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "expected"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid state")
}

func TestGoogleCallbackRejectsMissingStateCookie(t *testing.T) {
	r := oauthRouter(oauthConfig())

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?code=abc&state=whatever", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoogleOAuthUnconfigured(t *testing.T) {
	r := oauthRouter(&config.Config{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
