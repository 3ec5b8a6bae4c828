package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// EmailJSMailer posts to the EmailJS REST API.
type EmailJSMailer struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	client     *http.Client
}

func NewEmailJSMailer(baseURL, serviceID, templateID, publicKey string) *EmailJSMailer {
	if baseURL == "" {
		baseURL = "https://api.emailjs.com"
	}
	return &EmailJSMailer{
		BaseURL:    baseURL,
		ServiceID:  serviceID,
		TemplateID: templateID,
		PublicKey:  publicKey,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type emailjsReq struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (m *EmailJSMailer) Send(ctx context.Context, templateParams map[string]string) error {
	body, _ := json.Marshal(emailjsReq{
		ServiceID:      m.ServiceID,
		TemplateID:     m.TemplateID,
		UserID:         m.PublicKey,
		TemplateParams: templateParams,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs send: %d %s", resp.StatusCode, string(b))
	}
	return nil
}
