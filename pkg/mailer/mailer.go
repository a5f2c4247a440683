// Package mailer sends SMTP messages built with gomail.
package mailer

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// System delivers composed messages.
type System interface {
	// NewMessage returns a message with the From header already set.
	NewMessage() *gomail.Message
	Send(m *gomail.Message) error
}

type mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// New creates a mailer. Each Send dials the SMTP server.
func New(cfg *Config, logger *slog.Logger) System {
	return &mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		logger: logger.With("system", "mailer"),
	}
}

func (m *mailer) NewMessage() *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	return msg
}

func (m *mailer) Send(msg *gomail.Message) error {
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	m.logger.Info("mail sent", "to", msg.GetHeader("To"), "subject", msg.GetHeader("Subject"))
	return nil
}
