package email

import (
	"context"
	"fmt"
	"log/slog"

	mail "github.com/wneessen/go-mail"

	"github.com/rohan-lakhani/eSign-Workflow/internal/config"
	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

// SMTPNotifier sends workflow emails over SMTP. When no credentials are
// configured it runs in mock mode: sends are logged and reported successful,
// which keeps local development working without a mail server.
type SMTPNotifier struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

func NewSMTPNotifier(cfg config.SMTPConfig, logger *slog.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, logger: logger}
}

var _ domain.Notifier = (*SMTPNotifier)(nil)

func (n *SMTPNotifier) SendSignatureRequest(ctx context.Context, toEmail, recipientName, documentName, signingURL string, roleNumber int) error {
	subject := "Signature Required: " + documentName
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Document Signature Request</h2>
			<p>Hello %s,</p>
			<p>You have been requested to sign the document: <strong>%s</strong></p>
			<p>You are signing as <strong>Role %d</strong> in this workflow.</p>
			<div style="margin: 30px 0;">
				<a href="%s" style="background-color: #4CAF50; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Sign Document</a>
			</div>
			<p>This link will expire in 7 days.</p>
		</div>`,
		recipientName, documentName, roleNumber, signingURL)

	return n.send(ctx, toEmail, subject, body)
}

func (n *SMTPNotifier) SendCompletionNotice(ctx context.Context, toEmail, documentName, downloadURL string) error {
	subject := "Document Completed: " + documentName
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Document Signing Completed</h2>
			<p>The document <strong>%s</strong> has been signed by all parties.</p>
			<div style="margin: 30px 0;">
				<a href="%s" style="background-color: #2196F3; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Download Document</a>
			</div>
		</div>`,
		documentName, downloadURL)

	return n.send(ctx, toEmail, subject, body)
}

func (n *SMTPNotifier) send(ctx context.Context, toEmail, subject, body string) error {
	if n.cfg.Host == "" || n.cfg.User == "" || n.cfg.Password == "" {
		n.logger.Info("smtp not configured, mocking email delivery",
			"to", toEmail,
			"subject", subject)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	client, err := mail.NewClient(n.cfg.Host,
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.User),
		mail.WithPassword(n.cfg.Password),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send email to %s: %w", toEmail, err)
	}
	return nil
}
