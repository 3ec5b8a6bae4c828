package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"wellwish/internal/domain"
	"wellwish/internal/models"
	"wellwish/pkg/payment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotConfirmed = errors.New("payment not confirmed by gateway")
	ErrPaymentNotFound     = errors.New("payment not found")
)

// PaymentService fronts the gateway. Completion is always gateway-verified —
// either through the signed webhook or by asking the gateway about the
// session/intent carried on the return-URL redirect — and idempotent on the
// provider reference.
type PaymentService struct {
	provider   payment.Provider
	payments   PaymentStore
	bookings   BookingStore
	bookingSvc *BookingService
	appSvc     *ApplicationService
	baseURL    string
	currency   string
}

func NewPaymentService(provider payment.Provider, payments PaymentStore, bookings BookingStore, bookingSvc *BookingService, appSvc *ApplicationService, baseURL, currency string) *PaymentService {
	return &PaymentService{
		provider:   provider,
		payments:   payments,
		bookings:   bookings,
		bookingSvc: bookingSvc,
		appSvc:     appSvc,
		baseURL:    baseURL,
		currency:   currency,
	}
}

func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateCheckoutSession starts the hosted checkout for accepting an
// application; the charge equals the listing budget snapshotted on the
// application notification.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, ownerID, notificationID uint) (*payment.CheckoutSession, error) {
	orig, meta, err := s.appSvc.Snapshot(ownerID, notificationID)
	if err != nil {
		return nil, err
	}
	successURL := fmt.Sprintf(
		"%s/api/v1/payments/confirm?session_id={CHECKOUT_SESSION_ID}&application_id=%d&post_id=%d&sender_id=%d",
		s.baseURL, orig.ID, meta.PostID, orig.SenderID)
	sess, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		AmountCents: cents(meta.Budget),
		Currency:    s.currency,
		Description: "Payment for care service application",
		SuccessURL:  successURL,
		CancelURL:   s.baseURL + "/profile",
		Metadata: map[string]string{
			"application_id": fmt.Sprint(orig.ID),
			"post_id":        fmt.Sprint(meta.PostID),
			"sender_id":      fmt.Sprint(orig.SenderID),
		},
	})
	if err != nil {
		return nil, err
	}
	p := &models.Payment{
		UserID:         ownerID,
		AmountCents:    cents(meta.Budget),
		Currency:       s.currency,
		Provider:       "stripe",
		ProviderRef:    sess.ID,
		Status:         domain.PaymentStatusPending,
		Purpose:        domain.PaymentPurposeApplication,
		NotificationID: &orig.ID,
		IdempotencyKey: uuid.NewString(),
	}
	if err := s.payments.Create(p); err != nil {
		return nil, err
	}
	return sess, nil
}

// CreateBookingIntent starts the in-page payment for an accepted booking.
// Only the booking's sender may pay, and only while the booking is accepted.
func (s *PaymentService) CreateBookingIntent(ctx context.Context, userID, bookingID uint) (*payment.Intent, error) {
	b, err := s.bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.SenderID != userID {
		return nil, ErrNotAuthorized
	}
	if b.Status != domain.BookingStatusAccepted {
		return nil, ErrInvalidTransition
	}
	intent, err := s.provider.CreatePaymentIntent(ctx, payment.IntentRequest{
		AmountCents: cents(b.Amount),
		Currency:    s.currency,
		Metadata:    map[string]string{"booking_id": fmt.Sprint(b.ID)},
	})
	if err != nil {
		return nil, err
	}
	p := &models.Payment{
		UserID:         userID,
		AmountCents:    cents(b.Amount),
		Currency:       s.currency,
		Provider:       "stripe",
		ProviderRef:    intent.ID,
		Status:         domain.PaymentStatusPending,
		Purpose:        domain.PaymentPurposeBooking,
		BookingID:      &b.ID,
		IdempotencyKey: uuid.NewString(),
	}
	if err := s.payments.Create(p); err != nil {
		return nil, err
	}
	return intent, nil
}

// Complete finalizes the workflow behind a confirmed charge. Replays are
// no-ops: only the call that flips the payment record runs the transition.
// A failed transition reopens the record so the gateway's retry can drive it
// again instead of being swallowed as a replay.
func (s *PaymentService) Complete(ref string) error {
	first, p, err := s.payments.CompleteByRef(ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	if !first {
		return nil
	}
	if err := s.finalize(ref, p); err != nil {
		if reopenErr := s.payments.ReopenByRef(ref); reopenErr != nil {
			log.Printf("[payment] reopen after failed finalization: ref=%s err=%v", ref, reopenErr)
		}
		return err
	}
	return nil
}

func (s *PaymentService) finalize(ref string, p *models.Payment) error {
	switch p.Purpose {
	case domain.PaymentPurposeBooking:
		if p.BookingID == nil {
			return ErrBookingNotFound
		}
		_, err := s.bookingSvc.CompletePayment(*p.BookingID)
		return err
	case domain.PaymentPurposeApplication:
		if p.NotificationID == nil {
			return ErrNotificationGone
		}
		return s.appSvc.FinalizeAccept(*p.NotificationID)
	}
	return fmt.Errorf("payment %s: unknown purpose %q", ref, p.Purpose)
}

// ConfirmCheckout handles the checkout return-URL: the session id from the
// redirect is verified with the gateway before any state transition.
func (s *PaymentService) ConfirmCheckout(ctx context.Context, sessionID string) error {
	paid, err := s.provider.VerifyCheckoutSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if !paid {
		return ErrPaymentNotConfirmed
	}
	return s.Complete(sessionID)
}

// ConfirmIntent handles the in-page confirmation return for bookings.
func (s *PaymentService) ConfirmIntent(ctx context.Context, intentID string) error {
	paid, err := s.provider.VerifyPaymentIntent(ctx, intentID)
	if err != nil {
		return err
	}
	if !paid {
		return ErrPaymentNotConfirmed
	}
	return s.Complete(intentID)
}
