package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
	"maintenance-genie.backend/pkg/logger"
)

// SMTPMailer sends mail over SMTP with STARTTLS and PLAIN auth.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTPMailer creates a new SMTP mailer. from defaults to user when empty.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	if from == "" {
		from = user
	}
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *SMTPMailer) SendRegistrationOTP(ctx context.Context, to, otp string) error {
	subject, body := registrationOTPBody(otp)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) SendPasswordResetOTP(ctx context.Context, to, otp string) error {
	subject, body := passwordResetOTPBody(otp)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) SendAdminInvitation(ctx context.Context, to, password string) error {
	subject, body := adminInvitationBody(password)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	client, err := m.connect()
	if err != nil {
		logger.Error(ctx, "smtp connect failed", zap.Error(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("set mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("set rcpt to: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("open data writer: %w", err)
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if _, err := wc.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write email body: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close data writer: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("quit smtp client: %w", err)
	}

	logger.Info(ctx, "email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func (m *SMTPMailer) connect() (*smtp.Client, error) {
	addr := net.JoinHostPort(m.host, m.port)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial smtp server: %w", err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	if ok, _ := client.Extension("STARTTLS"); !ok {
		client.Close()
		return nil, fmt.Errorf("smtp server does not support STARTTLS")
	}
	tlsConfig := &tls.Config{
		ServerName: m.host,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		client.Close()
		return nil, fmt.Errorf("start tls: %w", err)
	}

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := client.Auth(auth); err != nil {
		client.Close()
		return nil, fmt.Errorf("smtp auth: %w", err)
	}

	return client, nil
}
