package main

import (
	"context"
	"medimate/config"
	"medimate/infras/kafka"
	"medimate/infras/otel"
	"medimate/internal/handlers/event"
	"medimate/shared/logger"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	logger.InitLogger()

	rootCmd := &cobra.Command{
		Use:   "worker",
		Short: "Background consumers for booking events",
	}

	rootCmd.AddCommand(bookingsCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Worker stopped with error")
	}
}

func bookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Consume the booking events topic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			group, _ := cmd.Flags().GetString("group")

			cfg := config.Get()

			logger.SetLogLevel(cfg)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			otl := otel.New(cfg)
			defer func() {
				if err := otl.Shutdown(context.Background()); err != nil {
					log.Error().Err(err).Msg("Failed to flush telemetry")
				}
			}()

			client := kafka.New(cfg, otl)
			defer client.Close()

			log.Info().Str("topic", cfg.Kafka.Topics.Booking).Msg("Consuming booking events")

			return client.Consume(ctx, group, cfg.Kafka.Topics.Booking, event.NewBooking(otl).Handle) //nolint:wrapcheck
		},
	}

	cmd.Flags().String("group", "", "Consumer group, defaults to KAFKA_CONSUMER_GROUP")

	return cmd
}
