package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"fincontrol/internal/amqp"
	"fincontrol/internal/config"
	"fincontrol/internal/finance"
	"fincontrol/internal/log"
	"fincontrol/internal/stats"
	"fincontrol/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.ParseLevel(cfg.LogLevel), log.ComponentApp)
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()

	blob, err := storage.Open(cfg, logger.WithComponent(log.ComponentStorage))
	if err != nil {
		logger.Error("Failed to initialize blob store",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	// Change notifications are optional; run without them when the broker
	// is not reachable.
	opts := []finance.Option{
		finance.WithLogger(logger.WithComponent(log.ComponentStore)),
	}
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without notifications",
				log.FieldError, err)
		} else {
			defer amqpClient.Close()
			opts = append(opts, finance.WithNotifier(amqpClient))
			logger.Info("Initialized AMQP client",
				log.FieldExchange, cfg.AMQPExchange,
				log.FieldQueue, cfg.AMQPQueue)
		}
	}

	store := finance.Open(ctx, blob, opts...)
	defer store.Close()

	month := store.CurrentMonth()
	rec := store.CurrentRecord()
	cards := store.Cards()

	logger.Info("Current month summary",
		log.FieldMonth, month,
		"total_income", stats.TotalIncome(rec),
		"total_expenses", stats.TotalExpenses(rec),
		"available_balance", stats.AvailableBalance(rec),
		"expense_count", len(rec.Expenses),
		"card_count", len(cards),
		"goal_count", len(store.SavingsGoals()))

	for _, ct := range stats.ExpensesByCategory(rec) {
		logger.Info("Category total",
			log.FieldMonth, month,
			log.FieldCategoryID, ct.CategoryID,
			"total", ct.Total)
	}

	for _, a := range stats.Alerts(cards, rec) {
		logger.Warn("Finance alert",
			log.FieldMonth, month,
			"severity", string(a.Severity),
			"message", a.Message)
	}
}
