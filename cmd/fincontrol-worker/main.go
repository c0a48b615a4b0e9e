package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"fincontrol/internal/amqp"
	"fincontrol/internal/config"
	"fincontrol/internal/log"
	"fincontrol/internal/storage"
	"fincontrol/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.ParseLevel(cfg.LogLevel), log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("Starting fincontrol-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	blob, err := storage.Open(cfg, logger.WithComponent(log.ComponentStorage))
	if err != nil {
		logger.Error("Failed to initialize blob store",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer blob.Close()

	refresher := worker.NewRefreshWorker(blob, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Consume change notifications, reconnecting with backoff when the
	// broker drops the connection.
	g.Go(func() error {
		for attempt := 0; ; attempt++ {
			client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				wait := amqp.ExponentialBackoff(attempt)
				logger.Warn("AMQP connect failed, retrying",
					log.FieldError, err, "retry_in", wait)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(wait):
					continue
				}
			}
			attempt = 0

			err = client.ConsumeChanges(ctx, refresher.HandleChange)
			client.Close()
			if errors.Is(err, context.Canceled) {
				return err
			}
			logger.Warn("AMQP consumption stopped, reconnecting", log.FieldError, err)
		}
	})

	// Periodic fallback refresh of the current month.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := refresher.Refresh(ctx); err != nil {
					logger.Error("Periodic refresh failed", log.FieldError, err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker exited with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped")
}
