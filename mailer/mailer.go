package mailer

import (
	"context"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Sender delivers plain-text emails.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, password), from: from}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return s.dialer.DialAndSend(m)
}

// LogSender writes emails to the log instead of sending them. Used when SMTP is not configured.
// Bodies can carry reset tokens, so they are only logged at debug level.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, body string) error {
	slog.Info("email not sent (no SMTP configured)", "to", to, "subject", subject)
	slog.DebugContext(ctx, "unsent email body", "to", to, "body", body)
	return nil
}
