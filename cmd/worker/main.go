package main

import (
	"garage/config"
	"garage/di"
	"garage/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	worker, err := di.InitializeWorker()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize worker")
	}

	worker.Serve()
}
