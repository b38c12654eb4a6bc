package service

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=../mocks/dispatcher_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"garage/infras/metrics"
	"garage/infras/otel"
	"garage/infras/sendgrid"
	"garage/infras/twilio"
	"garage/internal/domains/catalog"
	"garage/internal/domains/notification/model"
	"garage/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	channelEmail = "email"
	channelSMS   = "sms"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, event model.Event) error
}

type dispatcherImpl struct {
	mailer  sendgrid.Mailer
	sms     twilio.SMS
	catalog *catalog.Catalog
	metrics *metrics.Metrics
	otel    otel.Otel
}

func NewDispatcher(mailer sendgrid.Mailer, sms twilio.SMS, catalog *catalog.Catalog, metrics *metrics.Metrics, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		mailer:  mailer,
		sms:     sms,
		catalog: catalog,
		metrics: metrics,
		otel:    otel,
	}
}

// Dispatch sends the email and the SMS for event. Both channels are attempted and their errors joined.
// A channel that is not configured, or a customer without that contact, is skipped.
func (d *dispatcherImpl) Dispatch(ctx context.Context, event model.Event) (err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Dispatch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"event.type":     event.Type,
		"appointment.id": event.Appointment.ID,
	})

	serviceName := event.Appointment.Service
	if svc, ok := d.catalog.Find(event.Appointment.Service); ok {
		serviceName = svc.Name
	}

	msg, ok := render(event, serviceName)
	if !ok {
		log.Warn().Str("type", event.Type).Str("id", event.ID).Msg("unknown event type, nothing to dispatch")

		return nil
	}

	var errs []error

	if event.Appointment.Email != "" {
		emailErr := d.mailer.Send(ctx, sendgrid.Email{
			To:      event.Appointment.Email,
			ToName:  event.Appointment.Name,
			Subject: msg.Subject,
			Body:    msg.Body,
		})
		errs = append(errs, d.record(channelEmail, event, emailErr, sendgrid.ErrNotConfigured))
	}

	if event.Appointment.Phone != "" {
		smsErr := d.sms.Send(ctx, event.Appointment.Phone, msg.SMS)
		errs = append(errs, d.record(channelSMS, event, smsErr, twilio.ErrNotConfigured))
	}

	return errors.Join(errs...)
}

func (d *dispatcherImpl) record(channel string, event model.Event, err, notConfigured error) error {
	if errors.Is(err, notConfigured) {
		log.Debug().Str("channel", channel).Str("type", event.Type).Msg("notification channel not configured, skipped")

		return nil
	}

	d.metrics.NotificationSent(channel, err)

	if err != nil {
		return fmt.Errorf("failed to send %s for %s: %w", channel, event.Type, err)
	}

	return nil
}
