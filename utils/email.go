package utils

import (
	"fmt"
	"io"
	"net/http"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailAttachment is a file sent along with an email
type EmailAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ErrMailerNotConfigured is returned when no SMTP host was configured
var ErrMailerNotConfigured = NewAppError(http.StatusServiceUnavailable, "email delivery is not configured", nil)

// Mailer sends emails. The SMTP implementation is used in production.
type Mailer interface {
	Send(to, subject, body string, attachments ...EmailAttachment) error
}

// SMTPMailer sends email through an SMTP relay
type SMTPMailer struct {
	config EmailConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer creates a mailer for the given SMTP configuration
func NewSMTPMailer(config EmailConfig) *SMTPMailer {
	if config.Port == 0 {
		config.Port = DefaultSMTPPort
	}
	return &SMTPMailer{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// Send delivers one message
func (m *SMTPMailer) Send(to, subject, body string, attachments ...EmailAttachment) error {
	if m.config.Host == "" {
		return ErrMailerNotConfigured
	}
	msg := BuildMessage(m.config.From, to, subject, body, attachments...)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	LogInfo("Email %q sent to %s with %d attachment(s)", subject, to, len(attachments))
	return nil
}

// BuildMessage assembles an HTML email with attachments
func BuildMessage(from, to, subject, body string, attachments ...EmailAttachment) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	for _, a := range attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		m.Attach(a.Filename, settings...)
	}
	return m
}
