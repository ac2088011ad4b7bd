// Package mail provides a fluent SMTP mailer.
//
//	msg := mail.To(user.Email).
//	    Subject("Welcome to VoucherHub").
//	    Template(mail.WelcomeTemplate, data)
//	err := mail.NewSender().Send(msg)
package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/shashiranjanraj/voucherhub/config"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
)

// SMTP holds connection credentials.
type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// SMTPFromConfig reads the MAIL_* keys.
func SMTPFromConfig() SMTP {
	return SMTP{
		Host:     config.Get("MAIL_HOST", "localhost"),
		Port:     config.Get("MAIL_PORT", "587"),
		Username: config.Get("MAIL_USERNAME", ""),
		Password: config.Get("MAIL_PASSWORD", ""),
		From:     config.Get("MAIL_FROM", "no-reply@voucherhub.local"),
		FromName: config.Get("MAIL_FROM_NAME", "VoucherHub"),
	}
}

// Message is a fluent builder for an email.
type Message struct {
	to      []string
	subject string
	body    string
	isHTML  bool
	err     error
}

// To starts a message for the given recipients.
func To(addresses ...string) *Message {
	return &Message{to: addresses, isHTML: true}
}

func (m *Message) Subject(s string) *Message {
	m.subject = s
	return m
}

// Text sets a plain-text body.
func (m *Message) Text(text string) *Message {
	m.body = text
	m.isHTML = false
	return m
}

// Template renders tmpl with data as the HTML body. A render failure is
// reported by Send.
func (m *Message) Template(tmpl *template.Template, data interface{}) *Message {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		m.err = fmt.Errorf("mail: render %s: %w", tmpl.Name(), err)
		return m
	}
	m.body = buf.String()
	m.isHTML = true
	return m
}

// Recipients returns the To addresses.
func (m *Message) Recipients() []string { return m.to }

// Sender delivers messages.
type Sender interface {
	Send(m *Message) error
}

// NewSender returns an SMTP sender, or a log-only sender when
// MAIL_USERNAME is unset (local development).
func NewSender() Sender {
	cfg := SMTPFromConfig()
	if cfg.Username == "" {
		return LogSender{}
	}
	return &SMTPSender{cfg: cfg}
}

// LogSender writes the message summary to the logger instead of sending.
type LogSender struct{}

func (LogSender) Send(m *Message) error {
	if m.err != nil {
		return m.err
	}
	logger.Info("mail: delivery disabled, message logged", "to", strings.Join(m.to, ","), "subject", m.subject)
	return nil
}

// SMTPSender delivers over SMTP with implicit TLS on 465 and STARTTLS otherwise.
type SMTPSender struct {
	cfg SMTP
}

func (s *SMTPSender) Send(m *Message) error {
	if m.err != nil {
		return m.err
	}
	if len(m.to) == 0 {
		return fmt.Errorf("mail: no recipients")
	}

	cfg := s.cfg
	raw := m.buildRaw(fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From))
	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	if cfg.Port == "465" {
		return sendTLS(addr, auth, cfg.From, m.to, raw, cfg.Host)
	}
	return smtp.SendMail(addr, auth, cfg.From, m.to, raw)
}

func sendTLS(addr string, auth smtp.Auth, from string, to []string, raw []byte, host string) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return fmt.Errorf("mail: TLS dial: %w", err)
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		return err
	}
	return w.Close()
}

// headerSafe strips CR and LF so user input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

func (m *Message) buildRaw(from string) []byte {
	contentType := "text/plain"
	if m.isHTML {
		contentType = "text/html"
	}

	to := make([]string, len(m.to))
	for i, a := range m.to {
		to[i] = headerSafe(a)
	}

	var b strings.Builder
	b.WriteString("From: " + headerSafe(from) + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + headerSafe(m.subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=\"UTF-8\"\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(m.body)
	return []byte(b.String())
}
