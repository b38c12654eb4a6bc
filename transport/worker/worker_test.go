package worker

import (
	"context"
	"garage/config"
	"garage/infras/kafka"
	kafkaMocks "garage/infras/kafka/mocks"
	"garage/infras/otel/mocks"
	notificationMocks "garage/internal/domains/notification/mocks"
	"garage/internal/handlers/notification"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeScheduler struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (f *fakeScheduler) Start() { f.started.Store(true) }

func (f *fakeScheduler) Stop(context.Context) { f.stopped.Store(true) }

func TestWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "garage-notification"
	cfg.Kafka.Topic.AppointmentEvents = "appointment-events"

	client := kafkaMocks.NewMockClient(ctrl)
	consumed := make(chan struct{})

	client.EXPECT().
		Consume(gomock.Any(), "garage-notification", "appointment-events", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, _ kafka.Handler) error {
			close(consumed)
			<-ctx.Done()

			return nil
		})
	client.EXPECT().Close().Return(nil)

	scheduler := &fakeScheduler{}
	w := &Worker{
		Config:    cfg,
		Kafka:     client,
		Handler:   notification.New(notificationMocks.NewMockDispatcher(ctrl), mocks.NewOtel()),
		Scheduler: scheduler,
		Otel:      mocks.NewOtel(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		w.Run(ctx)
		close(done)
	}()

	select {
	case <-consumed:
	case <-time.After(time.Second):
		t.Fatal("consumer was not started")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}

	assert.True(t, scheduler.started.Load())
	assert.True(t, scheduler.stopped.Load())
}
