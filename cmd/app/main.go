package main

import (
	"garage/config"
	"garage/di"
	"garage/helper"
	"garage/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Garage Booking API
// @version 1.0
// @description Service slot availability and appointment booking for the workshop bays.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http, err := di.InitializeService()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize HTTP service")
	}

	http.Serve()
}
