package main

import (
	"medimate/config"
	"medimate/di"
	"medimate/helper"
	"medimate/shared/logger"

	_ "medimate/docs"

	"github.com/rs/zerolog/log"
)

// @title Medimate API
// @version 1.0
// @description Appointment booking for staff, doctors and patients.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
