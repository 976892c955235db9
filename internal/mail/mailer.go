package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer sends a single HTML message to one recipient. Implementations may
// fail per message; callers on the notification path treat failures as
// best-effort and must not let them abort sibling sends.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{
		host: host,
		port: port,
		user: user,
		pass: pass,
		from: from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := new(strings.Builder)
	fmt.Fprintf(msg, "From: %s\r\n", m.from)
	fmt.Fprintf(msg, "To: %s\r\n", to)
	fmt.Fprintf(msg, "Subject: %s\r\n", subject)
	fmt.Fprint(msg, "MIME-Version: 1.0\r\n")
	fmt.Fprint(msg, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
	fmt.Fprint(msg, "\r\n")
	fmt.Fprint(msg, htmlBody)

	addr := m.host + ":" + m.port
	var a smtp.Auth
	if m.user != "" {
		a = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := smtp.SendMail(addr, a, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// ConsoleMailer logs messages instead of delivering them. Used in
// development and as the default backend when no relay is configured.
type ConsoleMailer struct {
	logger *slog.Logger
	from   string
}

func NewConsoleMailer(logger *slog.Logger, from string) *ConsoleMailer {
	return &ConsoleMailer{logger: logger, from: from}
}

func (m *ConsoleMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.logger.Info("mail (console backend)",
		"from", m.from,
		"to", to,
		"subject", subject,
		"body_bytes", len(htmlBody),
	)
	return nil
}
