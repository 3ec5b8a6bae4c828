package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeProvider talks to the Stripe REST API directly (form-encoded, basic
// auth with the secret key).
type StripeProvider struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func NewStripeProvider(secretKey string) *StripeProvider {
	return &StripeProvider{
		BaseURL:   "https://api.stripe.com",
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *StripeProvider) post(ctx context.Context, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.SecretKey, "")
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return fmt.Errorf("stripe %s: %d %s", path, resp.StatusCode, e.Error.Message)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (p *StripeProvider) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(p.SecretKey, "")
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stripe %s: %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type stripeSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
}

type stripeIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", req.Currency)
	form.Set("line_items[0][price_data][product_data][name]", "Care Service Payment")
	form.Set("line_items[0][price_data][product_data][description]", req.Description)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(req.AmountCents, 10))
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}
	var out stripeSession
	if err := p.post(ctx, "/v1/checkout/sessions", form, &out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("stripe: empty session id")
	}
	return &CheckoutSession{ID: out.ID, URL: out.URL}, nil
}

func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", req.Currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}
	var out stripeIntent
	if err := p.post(ctx, "/v1/payment_intents", form, &out); err != nil {
		return nil, err
	}
	return &Intent{ID: out.ID, ClientSecret: out.ClientSecret}, nil
}

func (p *StripeProvider) VerifyCheckoutSession(ctx context.Context, sessionID string) (bool, error) {
	var out stripeSession
	if err := p.get(ctx, "/v1/checkout/sessions/"+url.PathEscape(sessionID), &out); err != nil {
		return false, err
	}
	return out.PaymentStatus == "paid", nil
}

func (p *StripeProvider) VerifyPaymentIntent(ctx context.Context, intentID string) (bool, error) {
	var out stripeIntent
	if err := p.get(ctx, "/v1/payment_intents/"+url.PathEscape(intentID), &out); err != nil {
		return false, err
	}
	return out.Status == "succeeded", nil
}
