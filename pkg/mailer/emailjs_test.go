package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailJSSend(t *testing.T) {
	var got emailjsReq
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1.0/email/send", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewEmailJSMailer(srv.URL, "svc_1", "tpl_1", "pub_1")
	err := m.Send(context.Background(), map[string]string{"to_email": "admin@wellwish.test"})
	require.NoError(t, err)

	assert.Equal(t, "svc_1", got.ServiceID)
	assert.Equal(t, "tpl_1", got.TemplateID)
	assert.Equal(t, "pub_1", got.UserID)
	assert.Equal(t, "admin@wellwish.test", got.TemplateParams["to_email"])
}

func TestEmailJSSendRelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad template"))
	}))
	defer srv.Close()

	m := NewEmailJSMailer(srv.URL, "svc_1", "tpl_1", "pub_1")
	err := m.Send(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad template")
}
