package agent

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Notifier delivers a native notification outside the app. Tags identify a
// reminder so re-delivery replaces rather than stacks.
type Notifier interface {
	RequestPermission() error
	Notify(tag, title, body string) error
}

// NoopNotifier is used when no delivery channel is configured.
type NoopNotifier struct{}

func (NoopNotifier) RequestPermission() error    { return nil }
func (NoopNotifier) Notify(_, _, _ string) error { return nil }

// EmailNotifier delivers reminders over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewEmailNotifier(host string, port int, username, password, from, to string) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) RequestPermission() error { return nil }

func (n *EmailNotifier) Notify(tag, title, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", title)
	m.SetHeader("X-Reminder-Tag", tag)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}
