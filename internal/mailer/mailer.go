// Package mailer sends outbound email over SMTP.
package mailer

import (
	"investapp/internal/config"
	"investapp/internal/logger"

	"gopkg.in/gomail.v2"
)

// Message is an outbound email. HTMLBody is rendered as text/html.
type Message struct {
	To       []string
	Subject  string
	HTMLBody string
}

// Sender delivers messages. The SMTP implementation is swapped for a fake
// in tests.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender delivers messages through the configured SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates a sender from the application configuration.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
	}
}

// Send delivers one message. Messages without a subject, body, or recipient
// are dropped with a warning rather than failing the caller.
func (s *SMTPSender) Send(msg Message) error {
	if msg.Subject == "" || msg.HTMLBody == "" {
		logger.Get().Warnw("email dropped: subject or body is empty", "to", msg.To)
		return nil
	}
	if len(msg.To) == 0 {
		logger.Get().Warnw("email dropped: no recipients", "subject", msg.Subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		logger.Get().Errorw("email send failed",
			"subject", msg.Subject,
			"recipients", len(msg.To),
			"error", err.Error(),
		)
		return err
	}
	return nil
}
