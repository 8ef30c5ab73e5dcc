package notifier

import (
	"fmt"

	"newsletter/pkg/config"
	"newsletter/pkg/logger"
	"newsletter/pkg/mail"
)

// Notifier sends the confirmation email for a new subscription.
type Notifier interface {
	Enabled() bool
	SendWelcome(to string) error
}

type disabledNotifier struct{}

func (disabledNotifier) Enabled() bool { return false }

func (disabledNotifier) SendWelcome(string) error { return nil }

type welcomeNotifier struct {
	sender mail.Sender
	brand  string
}

// New returns an SMTP-backed notifier when the mail configuration is
// complete and a no-op notifier otherwise.
func New(cfg config.MailConfig, log *logger.Logger) Notifier {
	log = log.With("component", "notifier")
	if !cfg.Enabled() {
		log.Info("Email service not configured - subscriptions will be saved but no emails will be sent")
		return disabledNotifier{}
	}

	sender := mail.NewSender(cfg, log)
	log.Info("Email service configured (smtp: %s:%d, from: %s)", sender.GetHost(), sender.GetPort(), cfg.FromAddr)
	return NewWithSender(sender, cfg.FromName)
}

func NewWithSender(sender mail.Sender, brand string) Notifier {
	if brand == "" {
		brand = "Non-QM News"
	}
	return &welcomeNotifier{sender: sender, brand: brand}
}

func (n *welcomeNotifier) Enabled() bool { return true }

func (n *welcomeNotifier) SendWelcome(to string) error {
	content, err := RenderWelcome(n.brand)
	if err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	return n.sender.Send(mail.Message{
		To:       to,
		Subject:  content.Subject,
		TextBody: content.Text,
		HTMLBody: content.HTML,
	})
}
