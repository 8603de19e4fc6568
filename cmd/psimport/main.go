package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/layerkit/psimport/cmd/psimport/commands"
)

const version = "0.1.0"

func main() {
	// Structured text logs on stderr; stdout carries reports and scripts
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := commands.Execute(context.Background(), version); err != nil {
		os.Exit(1)
	}
}
