package notification

import (
	"context"
	"errors"
	"garage/infras/kafka"
	"garage/infras/otel/mocks"
	notificationMocks "garage/internal/domains/notification/mocks"
	"garage/internal/domains/notification/model"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandler_Handle(t *testing.T) {
	event := model.Event{
		ID:         "e1",
		Type:       model.EventAppointmentBooked,
		OccurredAt: time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC),
		Appointment: model.Appointment{
			ID:    "a1",
			Date:  "2025-06-10",
			Time:  "10:00",
			Email: "anna@example.com",
		},
	}

	raw, err := (&kafka.Message{Key: event.Appointment.ID, Value: event}).ToKafkaMessage()
	require.NoError(t, err)

	tests := []struct {
		name    string
		message kafkaGo.Message
		setup   func(d *notificationMocks.MockDispatcher)
	}{
		{
			name:    "dispatched",
			message: raw,
			setup: func(d *notificationMocks.MockDispatcher) {
				d.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, got model.Event) error {
					assert.Equal(t, "e1", got.ID)
					assert.Equal(t, "10:00", got.Appointment.Time)
					assert.True(t, event.OccurredAt.Equal(got.OccurredAt))

					return nil
				})
			},
		},
		{
			name:    "dispatch failure is swallowed",
			message: raw,
			setup: func(d *notificationMocks.MockDispatcher) {
				d.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(errors.New("sendgrid returned status 401"))
			},
		},
		{
			name:    "poison message is skipped",
			message: kafkaGo.Message{Key: []byte("a1"), Value: []byte("{not json")},
			setup:   func(*notificationMocks.MockDispatcher) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dispatcher := notificationMocks.NewMockDispatcher(ctrl)
			tt.setup(dispatcher)

			handler := New(dispatcher, mocks.NewOtel())

			assert.NoError(t, handler.Handle(context.Background(), tt.message))
		})
	}
}
