package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/smtp"

	"careersync/backend/internal/config"
)

type EmailMessage struct {
	To      string
	Subject string
	HTML    string
}

// Mailer delivers one rendered report. The deployment picks exactly one
// implementation via EMAIL_PROVIDER; they are never composed.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

func NewMailer(cfg config.EmailConfig) (Mailer, error) {
	switch cfg.Provider {
	case "emailjs":
		return newEmailJSMailer(cfg), nil
	case "resend":
		return newResendMailer(cfg), nil
	case "smtp":
		return newSMTPMailer(cfg), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}

// --- EmailJS REST ---

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

type emailJSMailer struct {
	cfg        config.EmailConfig
	endpoint   string
	httpClient *http.Client
}

func newEmailJSMailer(cfg config.EmailConfig) *emailJSMailer {
	return &emailJSMailer{
		cfg:        cfg,
		endpoint:   emailJSEndpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Send implements Mailer.
func (m *emailJSMailer) Send(ctx context.Context, msg EmailMessage) error {
	payload := map[string]interface{}{
		"service_id":  m.cfg.EmailJSServiceID,
		"template_id": m.cfg.EmailJSTemplateID,
		"user_id":     m.cfg.EmailJSPublicKey,
		"accessToken": m.cfg.EmailJSPrivateKey,
		"template_params": map[string]string{
			"to_email": msg.To,
			"subject":  msg.Subject,
			"content":  msg.HTML,
		},
	}

	return postJSON(ctx, m.httpClient, m.endpoint, nil, payload)
}

// --- Resend REST ---

const resendEndpoint = "https://api.resend.com/emails"

type resendMailer struct {
	cfg        config.EmailConfig
	endpoint   string
	httpClient *http.Client
}

func newResendMailer(cfg config.EmailConfig) *resendMailer {
	return &resendMailer{
		cfg:        cfg,
		endpoint:   resendEndpoint,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Send implements Mailer.
func (m *resendMailer) Send(ctx context.Context, msg EmailMessage) error {
	payload := map[string]interface{}{
		"from":    m.cfg.FromAddress,
		"to":      []string{msg.To},
		"subject": msg.Subject,
		"html":    msg.HTML,
	}

	headers := map[string]string{
		"Authorization": "Bearer " + m.cfg.ResendAPIKey,
	}

	return postJSON(ctx, m.httpClient, m.endpoint, headers, payload)
}

// --- SMTP ---

type smtpMailer struct {
	cfg config.EmailConfig
}

func newSMTPMailer(cfg config.EmailConfig) *smtpMailer {
	return &smtpMailer{cfg: cfg}
}

// Send implements Mailer.
func (m *smtpMailer) Send(ctx context.Context, msg EmailMessage) error {
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)

	var body bytes.Buffer
	fmt.Fprintf(&body, "From: %s\r\n", m.cfg.FromAddress)
	fmt.Fprintf(&body, "To: %s\r\n", msg.To)
	fmt.Fprintf(&body, "Subject: %s\r\n", msg.Subject)
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	if err := smtp.SendMail(addr, auth, m.cfg.FromAddress, []string{msg.To}, body.Bytes()); err != nil {
		return fmt.Errorf("failed to send via SMTP: %w", err)
	}
	return nil
}

func postJSON(ctx context.Context, client *http.Client, endpoint string, headers map[string]string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call email API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email API returned status %d: %s", resp.StatusCode, detail)
	}

	return nil
}
