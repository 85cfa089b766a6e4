package main

import (
	"medimate/config"
	"medimate/helper"
	"medimate/shared/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	logger.InitLogger()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the Postgres schema",
	}

	rootCmd.PersistentFlags().StringVar(&helper.MigrationsDir, "dir", helper.MigrationsDir, "Path to migrations directory")

	rootCmd.AddCommand(
		actionCmd("up", "Apply all pending migrations", helper.Up),
		actionCmd("step-up", "Apply the next pending migration", helper.StepUp),
		actionCmd("down", "Roll back the last migration", helper.Down),
		actionCmd("drop", "Roll back every migration", helper.Drop),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}

func actionCmd(use, short string, run func(cfg *config.Config) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.Get()

			logger.SetLogLevel(cfg)

			return run(cfg)
		},
	}
}
