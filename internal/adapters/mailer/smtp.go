package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/samu/email-triage/internal/config"
	"go.uber.org/zap"
)

// SMTPSender delivers messages through an authenticated implicit-TLS SMTP
// relay. It implements the core.MailSender port: every failure is logged
// and reported as false, never raised.
type SMTPSender struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(cfg config.SMTPConfig, logger *zap.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers one message and reports whether the relay accepted it
func (s *SMTPSender) Send(ctx context.Context, recipient, subject, body string) bool {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		s.logger.Error("Email credentials not configured",
			zap.String("recipient", recipient))
		return false
	}
	// Reject headers with CRLF to prevent injection
	if strings.ContainsAny(recipient, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		s.logger.Error("Recipient or subject contains invalid characters",
			zap.String("recipient", recipient))
		return false
	}
	if err := ctx.Err(); err != nil {
		s.logger.Error("Request cancelled before send", zap.Error(err))
		return false
	}

	if err := s.send(ctx, recipient, subject, body); err != nil {
		s.logger.Error("Failed to send email",
			zap.String("recipient", recipient),
			zap.Error(err))
		return false
	}

	s.logger.Info("Email sent",
		zap.String("recipient", recipient),
		zap.String("relay", s.cfg.Host))
	return true
}

func (s *SMTPSender) send(ctx context.Context, recipient, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var message strings.Builder
	message.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.From))
	message.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	message.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	message.WriteString("\r\n")
	message.WriteString(body)

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{},
		Config: &tls.Config{
			ServerName: s.cfg.Host,
			MinVersion: tls.VersionTLS12,
		},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("TLS connection failed: %w", err)
	}
	// Bound the SMTP exchange by the request deadline, not just the dial
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client := smtp.NewClient(conn)
	defer client.Close()

	auth := sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.SendMail(s.cfg.From, []string{recipient}, strings.NewReader(message.String())); err != nil {
		return fmt.Errorf("message delivery failed: %w", err)
	}

	return client.Quit()
}
