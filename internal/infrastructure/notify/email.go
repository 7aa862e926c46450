package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/addisco/consulting-api/internal/core/ports"
	"github.com/addisco/consulting-api/internal/infrastructure/config"
)

const emailFromName = "Addisco & Company"

// EmailChannel delivers notification bodies over SMTP. When credentials are
// absent it stays up but reports every send as undelivered, so a dev
// environment without a mail account keeps working.
type EmailChannel struct {
	client *mail.Client
	from   string
	logger zerolog.Logger
}

func NewEmailChannel(cfg config.SMTPConfig, logger zerolog.Logger) *EmailChannel {
	ch := &EmailChannel{from: cfg.User, logger: logger}
	if cfg.User == "" || cfg.Pass == "" {
		logger.Warn().Msg("smtp credentials missing, email notifications disabled")
		return ch
	}

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Pass),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		logger.Error().Err(err).Msg("smtp client setup failed, email notifications disabled")
		return ch
	}
	ch.client = client
	return ch
}

func (ch *EmailChannel) Name() string { return "email" }

func (ch *EmailChannel) Send(ctx context.Context, destination, subject, body string) ports.SendResult {
	if ch.client == nil {
		return ports.SendResult{FailureReason: "email not configured"}
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(emailFromName, ch.from); err != nil {
		return ports.SendResult{FailureReason: err.Error()}
	}
	if err := msg.To(destination); err != nil {
		return ports.SendResult{FailureReason: err.Error()}
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := ch.client.DialAndSendWithContext(ctx, msg); err != nil {
		return ports.SendResult{FailureReason: err.Error()}
	}
	return ports.SendResult{Delivered: true, Reference: msg.GetMessageID()}
}
