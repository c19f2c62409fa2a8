package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	fastshot "github.com/opus-domini/fast-shot"
)

// EmailJSURL is the EmailJS REST API base.
const EmailJSURL = "https://api.emailjs.com"

type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is sent as accessToken when set.
	PrivateKey string
	BaseURL    string
}

// EmailJSClient delivers contact messages through an EmailJS template.
type EmailJSClient struct {
	cfg    EmailJSConfig
	client fastshot.ClientHttpMethods
}

func NewEmailJSClient(cfg EmailJSConfig) *EmailJSClient {
	base := cfg.BaseURL
	if base == "" {
		base = EmailJSURL
	}

	client := fastshot.NewClient(base).
		Config().SetTimeout(15 * time.Second).
		Header().Add("Content-Type", "application/json").
		Build()

	return &EmailJSClient{cfg: cfg, client: client}
}

// Configured reports whether the service, template and public key are set.
func (e *EmailJSClient) Configured() bool {
	return e.cfg.ServiceID != "" && e.cfg.TemplateID != "" && e.cfg.PublicKey != ""
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (e *EmailJSClient) Send(ctx context.Context, params map[string]string) error {
	if !e.Configured() {
		return fmt.Errorf("emailjs is not configured")
	}

	req := sendRequest{
		ServiceID:      e.cfg.ServiceID,
		TemplateID:     e.cfg.TemplateID,
		UserID:         e.cfg.PublicKey,
		AccessToken:    e.cfg.PrivateKey,
		TemplateParams: params,
	}

	resp, err := e.client.
		POST("/api/v1.0/email/send").
		Context().Set(ctx).
		Body().AsJSON(req).
		Send()
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		msg, rerr := resp.Body().AsString()
		if rerr != nil {
			return fmt.Errorf("emailjs returned status %d", resp.Status().Code())
		}
		return fmt.Errorf("emailjs returned status %d: %s", resp.Status().Code(), strings.TrimSpace(msg))
	}
	return nil
}
