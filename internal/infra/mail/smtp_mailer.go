// Package mail implements the outbound mail transport over SMTP.
package mail

import (
	"context"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

// smtpMailer sends messages through a configured SMTP relay.
type smtpMailer struct {
	client *gomail.Client
	from   string
}

// noopMailer is used when no SMTP transport is configured. It logs the skip
// so a silently-dropped confirmation is still visible in the logs.
type noopMailer struct {
	logger *slog.Logger
}

// NewMailer builds the Mailer from configuration. A missing or disabled SMTP
// section yields a no-op transport.
func NewMailer(cfg *config.Config, logger *slog.Logger) (service.Mailer, error) {
	if cfg.SMTP == nil || !cfg.SMTP.Enabled {
		return &noopMailer{logger: logger}, nil
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.SMTP.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.SMTP.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.SMTP.Username),
			gomail.WithPassword(cfg.SMTP.Password),
		)
	}

	client, err := gomail.NewClient(cfg.SMTP.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SMTP client")
	}

	return &smtpMailer{
		client: client,
		from:   cfg.SMTP.From,
	}, nil
}

// Send delivers a single message. Success/failure is binary; there is no
// retry and no queue.
func (m *smtpMailer) Send(ctx context.Context, msg *service.MailMessage) error {
	out := gomail.NewMsg()
	if err := out.From(m.from); err != nil {
		return errors.Wrap(err, "invalid from address")
	}
	if err := out.To(msg.To); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		out.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}

func (m *noopMailer) Send(_ context.Context, msg *service.MailMessage) error {
	m.logger.Info("SMTP transport disabled, skipping mail",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}
