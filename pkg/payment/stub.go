package payment

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// StubProvider is a no-op provider for development and tests.
type StubProvider struct{}

func (s *StubProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	id := fmt.Sprintf("cs_stub_%d", time.Now().UnixNano())
	return &CheckoutSession{ID: id, URL: "https://checkout.stub/" + id}, nil
}

func (s *StubProvider) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	id := fmt.Sprintf("pi_stub_%d", time.Now().UnixNano())
	return &Intent{ID: id, ClientSecret: id + "_secret"}, nil
}

func (s *StubProvider) VerifyCheckoutSession(ctx context.Context, sessionID string) (bool, error) {
	return strings.HasPrefix(sessionID, "cs_stub_"), nil
}

func (s *StubProvider) VerifyPaymentIntent(ctx context.Context, intentID string) (bool, error) {
	return strings.HasPrefix(intentID, "pi_stub_"), nil
}
