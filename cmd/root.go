package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-assignment.com/task-assignment/internal/configs"
	"task-assignment.com/task-assignment/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:           "task-assignment",
	Short:         "Team task and assignment service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

// loadConfig reads .env when present, validates the environment and
// initializes logging.
func loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil {
		logging.Logger.Debug(".env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	if err := logging.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
