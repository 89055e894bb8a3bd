// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Email is one outgoing message. Either body may be empty.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email. Business code depends on this, not on *Mailer.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Config holds SMTP settings. An empty Host puts the mailer in log-only mode.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// Mailer sends email over SMTP using gomail.
type Mailer struct {
	cfg    Config
	dialer *gomail.Dialer
	log    *zap.Logger
}

// New builds a Mailer. Without an SMTP host, messages are logged at info
// level instead of sent, which is what local development wants.
func New(cfg Config, logger *zap.Logger) *Mailer {
	m := &Mailer{cfg: cfg, log: logger}
	if cfg.Host != "" {
		port := cfg.Port
		if port == 0 {
			port = 587
		}
		m.dialer = gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Pass)
	}
	return m
}

// Enabled reports whether the mailer will actually deliver.
func (m *Mailer) Enabled() bool { return m.dialer != nil }

// Send delivers e, or logs it when SMTP is not configured.
func (m *Mailer) Send(ctx context.Context, e Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.To == "" {
		return fmt.Errorf("mailer: empty recipient")
	}
	if m.dialer == nil {
		m.log.Info("mail not sent (smtp not configured)",
			zap.String("to", e.To),
			zap.String("subject", e.Subject))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", e.Subject)
	switch {
	case e.TextBody != "" && e.HTMLBody != "":
		msg.SetBody("text/plain", e.TextBody)
		msg.AddAlternative("text/html", e.HTMLBody)
	case e.HTMLBody != "":
		msg.SetBody("text/html", e.HTMLBody)
	default:
		msg.SetBody("text/plain", e.TextBody)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", e.To, err)
	}
	m.log.Debug("mail sent", zap.String("to", e.To), zap.String("subject", e.Subject))
	return nil
}
