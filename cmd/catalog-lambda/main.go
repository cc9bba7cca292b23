package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/tendant/simple-catalog/pkg/catalog/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(config.WithEnv(), config.WithLogger(logger))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		fmt.Fprintln(os.Stderr, config.Usage())
		os.Exit(1)
	}

	c, err := cfg.Build(context.Background())
	if err != nil {
		slog.Error("Failed to build catalog", "error", err)
		os.Exit(1)
	}

	fn, err := c.Function(cfg.Handler)
	if err != nil {
		slog.Error("Failed to select handler", "handler", cfg.Handler, "error", err)
		os.Exit(1)
	}

	slog.Info("Starting catalog handler",
		"handler", cfg.Handler,
		"document_store", cfg.DocumentStore,
		"blob_store", cfg.BlobStore,
		"environment", cfg.Environment)
	lambda.Start(fn)
}
