package worker

import (
	"context"
	"garage/config"
	"garage/infras/kafka"
	"garage/infras/otel"
	"garage/internal/handlers/notification"
	"garage/internal/jobs"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

const stopTimeout = 30 * time.Second

type scheduler interface {
	Start()
	Stop(ctx context.Context)
}

// Worker runs the notification consumer and the job scheduler in one process.
type Worker struct {
	Config    *config.Config
	Kafka     kafka.Client
	Handler   notification.Handler
	Scheduler scheduler
	Otel      otel.Otel
}

func New(cfg *config.Config, kafka kafka.Client, handler notification.Handler, scheduler *jobs.Scheduler, otel otel.Otel) *Worker {
	return &Worker{
		Config:    cfg,
		Kafka:     kafka,
		Handler:   handler,
		Scheduler: scheduler,
		Otel:      otel,
	}
}

// Serve blocks until SIGTERM or SIGINT.
func (w *Worker) Serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Run(ctx)
}

// Run starts both loops and tears them down once ctx is done.
func (w *Worker) Run(ctx context.Context) {
	topic := w.Config.Kafka.Topic.AppointmentEvents

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		log.Info().Str("topic", topic).Msg("Starting notification consumer.")

		if err := w.Kafka.Consume(ctx, w.Config.Kafka.ConsumerGroup, topic, w.Handler.Handle); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Notification consumer stopped with error")
		}
	}()

	w.Scheduler.Start()

	<-ctx.Done()

	log.Info().Msg("Received shutdown signal, stopping worker.")

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	w.Scheduler.Stop(stopCtx)
	wg.Wait()

	if err := w.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	if err := w.Otel.Shutdown(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Worker stopped.")
}
