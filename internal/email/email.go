// Package email sends notification mail over SMTP.
package email

import (
	"context"
	"fmt"
	"os"

	"vacancy-bot/internal/notify"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type Sender struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

func New(host string, port int, username, password string, logger *zap.Logger) *Sender {
	return &Sender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
		logger: logger,
	}
}

// Send delivers one message. An attachment path that no longer exists is
// skipped rather than failing the whole message.
func (s *Sender) Send(ctx context.Context, m notify.Email) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	if m.AttachmentPath != "" {
		if _, err := os.Stat(m.AttachmentPath); err == nil {
			msg.Attach(m.AttachmentPath)
		} else {
			s.logger.Warn("attachment missing, sending without it",
				zap.String("path", m.AttachmentPath),
			)
		}
	}

	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", m.To, err)
	}

	s.logger.Info("email sent", zap.String("to", m.To), zap.String("subject", m.Subject))

	return nil
}
