package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"wellwish/internal/middleware"
	"wellwish/internal/repository"
	"wellwish/internal/service"

	"github.com/gin-gonic/gin"
)

// webhookTolerance bounds the age of a signed webhook payload.
const webhookTolerance = 5 * time.Minute

type PaymentHandler struct {
	svc           *service.PaymentService
	payments      *repository.PaymentRepository
	webhookSecret string
	frontendBase  string
}

func NewPaymentHandler(svc *service.PaymentService, payments *repository.PaymentRepository, webhookSecret, frontendBase string) *PaymentHandler {
	return &PaymentHandler{svc: svc, payments: payments, webhookSecret: webhookSecret, frontendBase: frontendBase}
}

// CreateCheckoutSessionRequest identifies the application notification being
// accepted. post_id/sender_id/amount may be sent by older clients but the
// server derives them from its own snapshot.
type CreateCheckoutSessionRequest struct {
	ApplicationID uint    `json:"application_id" binding:"required"`
	PostID        uint    `json:"post_id"`
	SenderID      uint    `json:"sender_id"`
	Amount        float64 `json:"amount"`
}

// CreatePaymentIntentRequest identifies the accepted booking to pay. The
// amount is server-derived from the booking record.
type CreatePaymentIntentRequest struct {
	BookingID uint    `json:"booking_id" binding:"required"`
	Amount    float64 `json:"amount"`
}

func paymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrNotificationGone),
		errors.Is(err, service.ErrPaymentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, repository.ErrStatusConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "payment not available in current status"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment operation failed"})
	}
}

// CreateCheckoutSession starts a hosted checkout to accept an application.
// The caller must own the listing the application targets.
func (h *PaymentHandler) CreateCheckoutSession(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.svc.CreateCheckoutSession(c.Request.Context(), userID, req.ApplicationID)
	if err != nil {
		paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sess.ID, "url": sess.URL})
}

// CreatePaymentIntent starts the in-page payment for the caller's accepted
// booking.
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	intent, err := h.svc.CreateBookingIntent(c.Request.Context(), userID, req.BookingID)
	if err != nil {
		paymentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_secret": intent.ClientSecret, "intent_id": intent.ID})
}

// Confirm handles the gateway return-URL redirect. The session or intent id
// is re-verified with the gateway before any state changes, then the browser
// is sent back to the frontend.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()
	var err error
	switch {
	case c.Query("session_id") != "":
		err = h.svc.ConfirmCheckout(ctx, c.Query("session_id"))
	case c.Query("payment_intent") != "":
		err = h.svc.ConfirmIntent(ctx, c.Query("payment_intent"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session_id or payment_intent"})
		return
	}
	if err != nil {
		log.Printf("[payment] confirm failed: %v", err)
		c.Redirect(http.StatusFound, h.frontendBase+"/profile?payment=failed")
		return
	}
	c.Redirect(http.StatusFound, h.frontendBase+"/profile?payment=success")
}

type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// Webhook consumes gateway events. The signature header is verified against
// the shared secret before the payload is trusted; completions are
// idempotent, so webhook and redirect confirmation can both fire.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	if !h.verifySignature(body, c.GetHeader("Stripe-Signature")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	var ev webhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	switch ev.Type {
	case "checkout.session.completed", "payment_intent.succeeded":
		if err := h.svc.Complete(ev.Data.Object.ID); err != nil && !errors.Is(err, service.ErrPaymentNotFound) {
			log.Printf("[payment] webhook completion failed: ref=%s err=%v", ev.Data.Object.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "completion failed"})
			return
		}
	case "checkout.session.expired", "payment_intent.payment_failed":
		if err := h.payments.FailByRef(ev.Data.Object.ID); err != nil {
			log.Printf("[payment] webhook fail-mark failed: ref=%s err=%v", ev.Data.Object.ID, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// verifySignature checks the "t=...,v1=..." signature header: HMAC-SHA256
// over "<t>.<body>" with the webhook secret, within the timestamp tolerance.
func (h *PaymentHandler) verifySignature(body []byte, header string) bool {
	if h.webhookSecret == "" || header == "" {
		return false
	}
	var ts string
	var sigs []string
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts = kv[1]
		case "v1":
			sigs = append(sigs, kv[1])
		}
	}
	if ts == "" || len(sigs) == 0 {
		return false
	}
	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return false
	}
	if d := time.Since(time.Unix(sec, 0)); d > webhookTolerance || d < -webhookTolerance {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	for _, s := range sigs {
		if hmac.Equal([]byte(expected), []byte(s)) {
			return true
		}
	}
	return false
}
