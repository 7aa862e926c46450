package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/addisco/consulting-api/internal/core/ports"
	"github.com/addisco/consulting-api/internal/infrastructure/config"
)

// WhatsAppChannel pushes short plain-text alerts through the Twilio WhatsApp
// API. The subject argument is ignored; only the body is sent. Like the email
// channel it degrades to a no-op when unconfigured.
type WhatsAppChannel struct {
	client *twilio.RestClient
	from   string
	logger zerolog.Logger
}

func NewWhatsAppChannel(cfg config.TwilioConfig, logger zerolog.Logger) *WhatsAppChannel {
	ch := &WhatsAppChannel{from: cfg.WhatsAppFrom, logger: logger}
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.WhatsAppFrom == "" {
		logger.Warn().Msg("twilio credentials missing, whatsapp notifications disabled")
		return ch
	}
	ch.client = twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return ch
}

func (ch *WhatsAppChannel) Name() string { return "whatsapp" }

func (ch *WhatsAppChannel) Send(ctx context.Context, destination, subject, body string) ports.SendResult {
	if ch.client == nil {
		return ports.SendResult{FailureReason: "whatsapp not configured"}
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetFrom("whatsapp:" + ch.from)
	params.SetTo("whatsapp:" + destination)
	params.SetBody(body)

	resp, err := ch.client.Api.CreateMessage(params)
	if err != nil {
		return ports.SendResult{FailureReason: err.Error()}
	}
	ref := ""
	if resp.Sid != nil {
		ref = *resp.Sid
	}
	return ports.SendResult{Delivered: true, Reference: ref}
}
