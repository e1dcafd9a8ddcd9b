package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"project-team-tracker/internal/app"
	"project-team-tracker/internal/config"
	"project-team-tracker/internal/console"
	"project-team-tracker/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// the console owns stdout; logs go to stderr at warn unless asked otherwise
	level := cfg.Logger.Level
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	zapLogger, err := logger.New(logger.Config{Level: level, Encoding: cfg.Logger.Encoding})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	tracker, err := app.New(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("startup failed", zap.Error(err))
	}
	defer tracker.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := console.New(tracker.Services, os.Stdout, zapLogger)
	if err := c.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Error("console stopped", zap.Error(err))
	}
}
