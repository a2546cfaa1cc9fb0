package mailer

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Addr     string
	Host     string
	User     string
	Password string
	From     string
}

type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends HTML mail through a single relay.
type SMTPMailer struct {
	cfg  Config
	log  *zerolog.Logger
	send SendFunc
}

func NewSMTPMailer(cfg Config, log *zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log, send: smtp.SendMail}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	if m.cfg.Host == "" {
		m.log.Info().Str("to", to).Str("subject", subject).Msg("SMTP not configured, email logged only")
		return nil
	}
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	msg := buildMessage(m.cfg.From, to, subject, htmlBody, time.Now())
	if err := m.send(m.cfg.Addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	m.log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}

func buildMessage(from, to, subject, htmlBody string, now time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
