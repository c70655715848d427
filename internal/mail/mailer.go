// File: internal/mail/mailer.go

// Package mail sends transactional email over SMTP.
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"go.uber.org/zap"

	"shortstay_backend/internal/config"
)

// Mailer sends transactional email.
type Mailer interface {
	SendVerificationCode(toEmail, code string, ttlMinutes int) error
	SendBookingStatusUpdate(toEmail, propertyTitle, status string) error
}

type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	logger   *zap.Logger
}

// NewSMTPMailer creates a Mailer backed by a plain SMTP relay.
func NewSMTPMailer(cfg *config.Config, logger *zap.Logger) Mailer {
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		fromName: cfg.SMTPFromName,
		logger:   logger.Named("mailer"),
	}
}

var verificationTemplate = template.Must(template.New("verification").Parse(`
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Your verification code</h2>
  <p>Use the code below to sign in. It expires in {{.TTLMinutes}} minutes.</p>
  <p style="font-size: 28px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
  <p>If you did not request this code, you can ignore this email.</p>
</body>
</html>`))

var bookingStatusTemplate = template.Must(template.New("bookingStatus").Parse(`
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Booking update</h2>
  <p>Your booking for <strong>{{.PropertyTitle}}</strong> is now <strong>{{.Status}}</strong>.</p>
</body>
</html>`))

func (m *smtpMailer) SendVerificationCode(toEmail, code string, ttlMinutes int) error {
	var body bytes.Buffer
	if err := verificationTemplate.Execute(&body, map[string]interface{}{
		"Code":       code,
		"TTLMinutes": ttlMinutes,
	}); err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}
	return m.send(toEmail, "Your sign-in code", body.String())
}

func (m *smtpMailer) SendBookingStatusUpdate(toEmail, propertyTitle, status string) error {
	var body bytes.Buffer
	if err := bookingStatusTemplate.Execute(&body, map[string]interface{}{
		"PropertyTitle": propertyTitle,
		"Status":        status,
	}); err != nil {
		return fmt.Errorf("failed to render booking status email: %w", err)
	}
	return m.send(toEmail, "Booking update", body.String())
}

func (m *smtpMailer) send(toEmail, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.fromName, m.from, toEmail, subject, htmlBody,
	))

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{toEmail}, msg); err != nil {
		m.logger.Error("Failed to send email", zap.String("to", toEmail), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}
	m.logger.Info("Email sent", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}

// NoopMailer discards all mail. Used in tests and local development without
// an SMTP relay.
type NoopMailer struct{}

func (NoopMailer) SendVerificationCode(string, string, int) error       { return nil }
func (NoopMailer) SendBookingStatusUpdate(string, string, string) error { return nil }
