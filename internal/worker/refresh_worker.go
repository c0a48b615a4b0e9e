// Package worker recomputes month summaries whenever the persisted finance
// data changes, and on a periodic schedule as a fallback.
package worker

import (
	"context"
	"fmt"
	"time"

	"fincontrol/internal/amqp"
	"fincontrol/internal/core"
	"fincontrol/internal/log"
	"fincontrol/internal/stats"
	"fincontrol/internal/storage"
)

// RefreshWorker reloads the blob and logs derived figures for the month a
// change touched. It never mutates anything; the store is the only writer.
type RefreshWorker struct {
	blob   storage.Blob
	logger *log.Logger
	now    func() time.Time
}

func NewRefreshWorker(blob storage.Blob, logger *log.Logger) *RefreshWorker {
	return &RefreshWorker{
		blob:   blob,
		logger: logger.WithComponent(log.ComponentWorker),
		now:    time.Now,
	}
}

// HandleChange processes one data-changed message: reload the snapshot and
// summarize the affected month.
func (w *RefreshWorker) HandleChange(ctx context.Context, msg *amqp.DataChangedMessage) error {
	w.logger.InfoContext(ctx, "Processing change notification",
		log.FieldEntity, msg.Entity,
		log.FieldOperation, msg.Op,
		log.FieldEntityID, msg.EntityID,
		log.FieldMonth, msg.Month)

	month := msg.Month
	if month == "" {
		month = core.MonthKey(w.now())
	}
	return w.summarize(ctx, month)
}

// Refresh recomputes the current calendar month, used by the periodic
// fallback tick.
func (w *RefreshWorker) Refresh(ctx context.Context) error {
	return w.summarize(ctx, core.MonthKey(w.now()))
}

func (w *RefreshWorker) summarize(ctx context.Context, month string) error {
	data, err := w.blob.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if data == nil {
		w.logger.InfoContext(ctx, "No snapshot persisted yet", log.FieldMonth, month)
		return nil
	}

	rec := data.MonthlyData[month]
	alerts := stats.Alerts(data.Cards, rec)

	w.logger.InfoContext(ctx, "Month summary",
		log.FieldMonth, month,
		"total_income", stats.TotalIncome(rec),
		"total_expenses", stats.TotalExpenses(rec),
		"available_balance", stats.AvailableBalance(rec),
		"expense_count", len(rec.Expenses),
		"alert_count", len(alerts))

	for _, a := range alerts {
		w.logger.WarnContext(ctx, "Finance alert",
			log.FieldMonth, month,
			"severity", string(a.Severity),
			"message", a.Message)
	}

	return nil
}
