package payment

import "context"

// CheckoutRequest describes a hosted checkout session (application flow).
type CheckoutRequest struct {
	AmountCents int64
	Currency    string
	Description string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession is the gateway's hosted checkout handle.
type CheckoutSession struct {
	ID  string
	URL string
}

// IntentRequest describes an in-page payment intent (booking flow).
type IntentRequest struct {
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

// Intent carries the client secret the frontend confirms with.
type Intent struct {
	ID           string
	ClientSecret string
}

// Provider is the payment gateway surface the workflow coordinators consume.
// Verify calls ask the gateway whether a charge actually completed; state
// transitions never trust a bare client redirect.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	VerifyCheckoutSession(ctx context.Context, sessionID string) (bool, error)
	VerifyPaymentIntent(ctx context.Context, intentID string) (bool, error)
}
