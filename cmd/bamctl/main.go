package main

import (
	"log/slog"
	"os"
	"slices"

	"github.com/lite-lake/infra-bamctl/internal/infrastructure/logger"
	"github.com/lite-lake/infra-bamctl/internal/interfaces/cli"
)

func main() {
	debug := os.Getenv("BAMCTL_DEBUG") != "" || slices.Contains(os.Args[1:], "--debug")

	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	logger.Init(&logger.Config{
		Level:  logLevel,
		Format: os.Getenv("BAMCTL_LOG_FORMAT"),
	})

	cli.Execute()
}
