//go:build wireinject
// +build wireinject

package di

import (
	"garage/config"
	"garage/infras/kafka"
	"garage/infras/metrics"
	"garage/infras/otel"
	"garage/infras/postgres"
	"garage/infras/redis"
	"garage/infras/s3"
	"garage/infras/sendgrid"
	"garage/infras/twilio"
	"garage/internal/domains/catalog"
	"garage/internal/jobs"
	"garage/shared/cache"
	"garage/transport/http"
	"garage/transport/http/middleware"
	"garage/transport/http/router"
	"garage/transport/worker"

	appointmentRepository "garage/internal/domains/appointment/repository"
	appointmentService "garage/internal/domains/appointment/service"
	notificationService "garage/internal/domains/notification/service"
	worksheetService "garage/internal/domains/worksheet/service"

	appointmentHandler "garage/internal/handlers/appointment"
	catalogHandler "garage/internal/handlers/catalog"
	healthHandler "garage/internal/handlers/health"
	notificationHandler "garage/internal/handlers/notification"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
	s3.New,
	wire.InterfaceValue(new(prometheus.Registerer), prometheus.DefaultRegisterer),
	metrics.New,
)

var notificationChannels = wire.NewSet(
	sendgrid.New,
	twilio.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var appointmentDomain = wire.NewSet(
	appointmentRepository.New,
	appointmentService.New,
)

var domains = wire.NewSet(
	catalog.New,
	notificationService.NewPublisher,
	appointmentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	catalogHandler.New,
	appointmentHandler.New,
	router.New,
)

var background = wire.NewSet(
	notificationChannels,
	notificationService.NewDispatcher,
	notificationHandler.New,
	worksheetService.New,
	jobs.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

func InitializeWorker() (*worker.Worker, error) {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		domains,
		background,
		worker.New,
	)

	return &worker.Worker{}, nil
}
