package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/devcampdir/api/internal/config"
)

// Mailer sends transactional email. The auth service depends on this
// interface so tests can substitute a recording fake.
type Mailer interface {
	SendPasswordResetEmail(toEmail, toName, resetURL string) error
}

// EmailService sends email through SendGrid.
type EmailService struct {
	apiKey      string
	fromAddress string
	fromName    string
}

// NewEmailService creates a new EmailService from the email configuration.
func NewEmailService(cfg *config.EmailSettings) (*EmailService, error) {
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("sendgrid API key is not configured")
	}
	return &EmailService{
		apiKey:      cfg.SendGridAPIKey,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
	}, nil
}

// SendPasswordResetEmail sends a password reset email carrying the reset URL.
// A transport error or a non-2xx SendGrid response is reported to the caller
// so the reset state can be rolled back.
func (s *EmailService) SendPasswordResetEmail(toEmail, toName, resetURL string) error {
	from := mail.NewEmail(s.fromName, s.fromAddress)
	to := mail.NewEmail(toName, toEmail)
	subject := "Password Reset Request"
	plainTextContent := fmt.Sprintf(
		"You are receiving this email because you (or someone else) requested a password reset. Make a PUT request to: %s\n\nThis link expires in 10 minutes. If you did not request this, you can ignore this email.",
		resetURL,
	)
	htmlContent := fmt.Sprintf(
		"<p>You are receiving this email because you (or someone else) requested a password reset.</p><p>Make a PUT request to: <a href=\"%s\">%s</a></p><p>This link expires in 10 minutes. If you did not request this, you can ignore this email.</p>",
		resetURL, resetURL,
	)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Error().Err(err).Msg("Failed to send password reset email")
		return err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		log.Error().Int("status_code", response.StatusCode).Msg("SendGrid rejected password reset email")
		return fmt.Errorf("email provider returned status %d", response.StatusCode)
	}

	log.Info().Int("status_code", response.StatusCode).Msg("Password reset email sent")
	return nil
}
