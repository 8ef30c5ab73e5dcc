package mail

import (
	"fmt"

	"newsletter/pkg/config"
	"newsletter/pkg/logger"
	"newsletter/pkg/metrics"

	"gopkg.in/gomail.v2"
)

// Message is a single outbound email with a plain-text and an HTML part.
type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

type Sender interface {
	Send(msg Message) error
	GetHost() string
	GetPort() int
}

// dialer is the part of *gomail.Dialer the sender needs.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type sender struct {
	dialer        dialer
	host          string
	port          int
	senderAddress string
	senderName    string
	logger        *logger.Logger
}

// NewSender builds an SMTP sender. Port 465 uses implicit TLS, any other
// port upgrades with STARTTLS when the server offers it.
func NewSender(cfg config.MailConfig, log *logger.Logger) Sender {
	log.Info("[mail] Initializing mail sender for host: %s, port: %d, user: %s", cfg.Host, cfg.Port, cfg.User)
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.SSL = cfg.Port == 465

	senderAddr := cfg.FromAddr
	if senderAddr == "" {
		senderAddr = cfg.User
	}
	senderName := cfg.FromName
	if senderName == "" {
		senderName = "Non-QM News"
	}

	return &sender{
		dialer:        d,
		host:          cfg.Host,
		port:          cfg.Port,
		senderAddress: senderAddr,
		senderName:    senderName,
		logger:        log,
	}
}

func (s *sender) Send(msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("mail recipient is required")
	}

	s.logger.Debug("[mail] Preparing mail to %s. Subject: %s", msg.To, msg.Subject)
	if err := s.dialer.DialAndSend(s.buildMessage(msg)); err != nil {
		metrics.MailSendFailure.WithLabelValues(s.host).Inc()
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}

	metrics.MailSendSuccess.WithLabelValues(s.host).Inc()
	return nil
}

func (s *sender) buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderAddress, s.senderName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}
	return m
}

func (s *sender) GetHost() string {
	return s.host
}

func (s *sender) GetPort() int {
	return s.port
}
