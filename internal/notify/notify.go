package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"sitecms/internal/config"
)

// ErrNotConfigured is returned by the notifier used when no SMTP host is set.
var ErrNotConfigured = errors.New("notify: smtp not configured")

// Message is one outbound plain-text email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// Notifier delivers messages. Implementations must honor ctx cancellation.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// New returns an SMTP notifier, or one that always fails with
// ErrNotConfigured when cfg.Host is empty.
func New(cfg config.SMTPConfig) Notifier {
	if cfg.Host == "" {
		return unconfigured{}
	}
	return &smtpNotifier{cfg: cfg}
}

type unconfigured struct{}

func (unconfigured) Notify(context.Context, Message) error { return ErrNotConfigured }

type smtpNotifier struct {
	cfg config.SMTPConfig
}

func (n *smtpNotifier) Notify(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("notify: no recipient")
	}

	m := mail.NewMsg()
	if err := m.From(n.cfg.From); err != nil {
		return fmt.Errorf("notify: from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("notify: to address: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return fmt.Errorf("notify: reply-to address: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("notify: smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("notify: send: %w", err)
	}
	return nil
}
