package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/paid-media-etl/internal/config"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "etl",
		Short:         "Paid-media ingestion and normalization engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCommand(),
		newHistoricalCommand(),
		newHistoricalAllCommand(),
		newServeCommand(),
		newTokenCommand(),
	)
	return root
}

// loadConfig reads the environment and applies the configured log level
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("invalid log level %q, using info", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	return cfg, nil
}
