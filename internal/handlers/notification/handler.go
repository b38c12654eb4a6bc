package notification

import (
	"context"
	"garage/infras/kafka"
	"garage/infras/otel"
	"garage/internal/domains/notification/model"
	"garage/internal/domains/notification/service"
	"garage/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Handler consumes appointment events and hands them to the dispatcher.
type Handler struct {
	dispatcher service.Dispatcher
	otel       otel.Otel
}

func New(dispatcher service.Dispatcher, otel otel.Otel) Handler {
	return Handler{
		dispatcher: dispatcher,
		otel:       otel,
	}
}

// Handle always returns nil so the offset is committed. Undecodable messages and delivery failures are logged
// and dropped, a redelivery would only repeat the same outcome.
func (handler *Handler) Handle(ctx context.Context, message kafkaGo.Message) error {
	ctx, scope := handler.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleAppointmentEvent")
	defer scope.End()

	event, err := kafka.DecodeKafkaMessage[model.Event](message)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("key", string(message.Key)).Int64("offset", message.Offset).Msg("failed to decode appointment event")

		return nil
	}

	scope.SetAttributes(map[string]any{
		"event.id":       event.ID,
		"event.type":     event.Type,
		"appointment.id": event.Appointment.ID,
	})

	if err := handler.dispatcher.Dispatch(ctx, event); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", event.Type).Str("appointment_id", event.Appointment.ID).Msg("failed to dispatch appointment notification")

		return nil
	}

	return nil
}
