package twilio

//go:generate go run go.uber.org/mock/mockgen -source=./twilio.go -destination=./mocks/twilio_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"garage/config"
	"garage/infras/otel"
	"garage/shared/constant"

	"github.com/rs/zerolog/log"
	twilioGo "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var (
	ErrNotConfigured = errors.New("twilio is not configured")
	ErrEmptyNumber   = errors.New("recipient phone number is empty")
)

type SMS interface {
	Send(ctx context.Context, to, body string) error
}

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type smsImpl struct {
	api  messageCreator
	from string
	otel otel.Otel
}

func New(config *config.Config, otel otel.Otel) SMS {
	cfg := config.Notification.Twilio

	var api messageCreator
	if cfg.AccountSID != "" && cfg.AuthToken != "" && cfg.FromNumber != "" {
		client := twilioGo.NewRestClientWithParams(twilioGo.ClientParams{
			Username:   cfg.AccountSID,
			Password:   cfg.AuthToken,
			AccountSid: cfg.AccountSID,
		})
		api = client.Api
	} else {
		log.Warn().Msg("Twilio credentials are not set, SMS will not be sent")
	}

	return NewWithClient(api, cfg.FromNumber, otel)
}

func NewWithClient(api messageCreator, from string, otel otel.Otel) SMS {
	return &smsImpl{
		api:  api,
		from: from,
		otel: otel,
	}
}

// Send is synchronous. The Twilio REST client takes no context, so cancellation only applies before the call.
func (s *smsImpl) Send(ctx context.Context, to, body string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".twilio.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if s.api == nil {
		return ErrNotConfigured
	}

	if to == "" {
		return ErrEmptyNumber
	}

	if err = ctx.Err(); err != nil {
		return fmt.Errorf("sms cancelled: %w", err)
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send sms via twilio")

		return fmt.Errorf("failed to send sms via twilio: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}

	log.Info().Str("to", to).Str("sid", sid).Msg("sms sent via twilio")

	return nil
}
