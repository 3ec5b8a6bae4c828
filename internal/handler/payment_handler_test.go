package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookSignatureValid(t *testing.T) {
	h := &PaymentHandler{webhookSecret: "whsec_test"}
	body := []byte(`{"type":"checkout.session.completed"}`)
	ts := time.Now().Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload("whsec_test", ts, body))

	assert.True(t, h.verifySignature(body, header))
}

func TestWebhookSignatureWrongSecret(t *testing.T) {
	h := &PaymentHandler{webhookSecret: "whsec_test"}
	body := []byte(`{}`)
	ts := time.Now().Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload("whsec_other", ts, body))

	assert.False(t, h.verifySignature(body, header))
}

func TestWebhookSignatureTamperedBody(t *testing.T) {
	h := &PaymentHandler{webhookSecret: "whsec_test"}
	ts := time.Now().Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload("whsec_test", ts, []byte(`{"a":1}`)))

	assert.False(t, h.verifySignature([]byte(`{"a":2}`), header))
}

func TestWebhookSignatureStaleTimestamp(t *testing.T) {
	h := &PaymentHandler{webhookSecret: "whsec_test"}
	body := []byte(`{}`)
	ts := time.Now().Add(-time.Hour).Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload("whsec_test", ts, body))

	assert.False(t, h.verifySignature(body, header))
}

func TestWebhookSignatureMalformedHeader(t *testing.T) {
	h := &PaymentHandler{webhookSecret: "whsec_test"}
	assert.False(t, h.verifySignature([]byte(`{}`), ""))
	assert.False(t, h.verifySignature([]byte(`{}`), "garbage"))
	assert.False(t, h.verifySignature([]byte(`{}`), "t=notanumber,v1=deadbeef"))
}

func TestWebhookSignatureNoSecretConfigured(t *testing.T) {
	h := &PaymentHandler{}
	body := []byte(`{}`)
	ts := time.Now().Unix()
	header := fmt.Sprintf("t=%d,v1=%s", ts, signPayload("", ts, body))

	// Without a configured secret all webhooks are rejected.
	assert.False(t, h.verifySignature(body, header))
}
