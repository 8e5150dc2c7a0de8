package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
