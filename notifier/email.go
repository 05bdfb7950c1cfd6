package notifier

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// EmailSink mails notifications to the admin inbox over SMTP.
type EmailSink struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewEmailSink(host string, port int, user, pass, from, to string) *EmailSink {
	return &EmailSink{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
		to:     to,
	}
}

func (s *EmailSink) Name() string { return "email" }

// Verify opens and closes one SMTP session to confirm the credentials.
func (s *EmailSink) Verify() error {
	conn, err := s.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	return conn.Close()
}

func (s *EmailSink) Send(ctx context.Context, n Notification) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", n.Subject)
	if n.ReplyTo != "" {
		m.SetHeader("Reply-To", n.ReplyTo)
	}
	m.SetBody("text/plain", n.Body)

	// gomail has no context support; bound the wait instead.
	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
