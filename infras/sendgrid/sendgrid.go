package sendgrid

//go:generate go run go.uber.org/mock/mockgen -source=./sendgrid.go -destination=./mocks/sendgrid_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"garage/config"
	"garage/infras/otel"
	"garage/shared/constant"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	sendgridGo "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrNotConfigured = errors.New("sendgrid is not configured")

type Email struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type sendClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type mailerImpl struct {
	client sendClient
	from   *mail.Email
	otel   otel.Otel
}

// New returns a Mailer backed by the SendGrid v3 API. Without an API key every Send fails with
// ErrNotConfigured so the caller can log the skipped email.
func New(config *config.Config, otel otel.Otel) Mailer {
	cfg := config.Notification.SendGrid

	var client sendClient
	if cfg.APIKey != "" {
		client = sendgridGo.NewSendClient(cfg.APIKey)
	} else {
		log.Warn().Msg("SendGrid API key is not set, emails will not be sent")
	}

	return NewWithClient(client, cfg.FromName, cfg.FromEmail, otel)
}

func NewWithClient(client sendClient, fromName, fromEmail string, otel otel.Otel) Mailer {
	return &mailerImpl{
		client: client,
		from:   mail.NewEmail(fromName, fromEmail),
		otel:   otel,
	}
}

func (m *mailerImpl) Send(ctx context.Context, email Email) (err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".sendgrid.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if m.client == nil {
		return ErrNotConfigured
	}

	message := mail.NewSingleEmail(m.from, email.Subject, mail.NewEmail(email.ToName, email.To), email.Body, "")

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", email.To).Msg("failed to send email via sendgrid")

		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		log.Error().Int("status", response.StatusCode).Str("body", response.Body).Str("to", email.To).Msg("sendgrid returned error status")

		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	log.Info().Str("to", email.To).Str("subject", email.Subject).Int("status", response.StatusCode).Msg("email sent via sendgrid")

	return nil
}
