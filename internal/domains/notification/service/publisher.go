package service

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=../mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"
	"garage/config"
	"garage/infras/kafka"
	"garage/infras/otel"
	"garage/internal/domains/notification/model"
	"garage/shared/constant"

	"github.com/rs/zerolog/log"
)

type Publisher interface {
	Publish(ctx context.Context, events ...model.Event) error
}

type publisherImpl struct {
	kafka kafka.Client
	topic string
	otel  otel.Otel
}

func NewPublisher(kafka kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		kafka: kafka,
		topic: cfg.Kafka.Topic.AppointmentEvents,
		otel:  otel,
	}
}

// Publish writes events keyed by appointment id, so the events of one appointment stay ordered.
func (p *publisherImpl) Publish(ctx context.Context, events ...model.Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(events))
	for i, event := range events {
		messages[i] = kafka.Message{Key: event.Appointment.ID, Value: event}
	}

	if err = p.kafka.SendMessages(ctx, p.topic, messages...); err != nil {
		log.Error().Err(err).Str("topic", p.topic).Int("count", len(events)).Msg("failed to publish appointment events")

		return fmt.Errorf("failed to publish appointment events: %w", err)
	}

	return nil
}
