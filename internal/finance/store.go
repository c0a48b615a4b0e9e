// Package finance implements the canonical finance store: credit cards,
// categories, month-keyed income and expense records, and savings goals.
//
// The store owns a single FinanceData aggregate and a current-month pointer.
// Every mutation rewrites the full persisted blob and emits a best-effort
// change notification; neither failure is surfaced to the caller. Reads hand
// out copies, so aggregation over a snapshot never races a later mutation.
package finance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"fincontrol/internal/core"
	"fincontrol/internal/log"
	"fincontrol/internal/storage"
)

// Notifier receives a change event after each successful mutation. Entity is
// one of "card", "category", "income", "expense", "goal", "month"; op is
// "add", "update", "delete" or "set".
type Notifier interface {
	PublishChange(ctx context.Context, entity, op, id, month string) error
}

// Store holds the canonical FinanceData and applies all mutations.
type Store struct {
	mu           sync.Mutex
	data         *core.FinanceData
	currentMonth string

	blob     storage.Blob
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock injects the time source used for the current month and the
// available-months window. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator injects the id generator for new entities. Defaults to
// random UUIDs.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithNotifier attaches a change notifier. Without one, mutations are
// silent.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Open loads the persisted aggregate from blob, initializing fresh seeded
// state when nothing is stored or the stored payload cannot be decoded, and
// selects the real current calendar month.
func Open(ctx context.Context, blob storage.Blob, opts ...Option) *Store {
	s := &Store{
		blob:   blob,
		logger: log.New(log.ParseLevel("info"), log.ComponentStore),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := blob.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "Persisted data unreadable, starting fresh",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		data = nil
	}
	if data == nil {
		data = core.NewFinanceData()
	}
	s.data = data

	s.currentMonth = core.MonthKey(s.now())
	s.data.EnsureMonth(s.currentMonth)
	s.persist(ctx)

	return s
}

// Close releases the underlying blob store.
func (s *Store) Close() error {
	return s.blob.Close()
}

// persist writes the whole aggregate back. Failure is logged and swallowed:
// the in-memory state stays authoritative and no operation reports errors.
func (s *Store) persist(ctx context.Context) {
	if err := s.blob.Save(ctx, s.data); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist finance data",
			log.FieldOperation, log.OpSave, log.FieldError, err)
	}
}

// notify publishes a change event if a notifier is attached. Best effort.
func (s *Store) notify(ctx context.Context, entity, op, id string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishChange(ctx, entity, op, id, s.currentMonth); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish change notification",
			log.FieldEntity, entity,
			log.FieldOperation, op,
			log.FieldEntityID, id,
			log.FieldError, err)
	}
}

// CurrentMonth returns the active month key.
func (s *Store) CurrentMonth() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentMonth
}

// SetCurrentMonth moves the active month pointer, lazily creating the
// month's record on first selection.
func (s *Store) SetCurrentMonth(ctx context.Context, month string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentMonth = month
	if _, created := s.data.EnsureMonth(month); created {
		s.persist(ctx)
		s.notify(ctx, "month", log.OpSet, month)
	}
}

// AvailableMonths returns the trailing twelve month keys ending at the real
// current calendar month. Purely clock-derived; independent of stored data.
func (s *Store) AvailableMonths() []string {
	return core.AvailableMonths(s.now())
}

// Cards returns a copy of the card list.
func (s *Store) Cards() []core.CreditCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.CreditCard(nil), s.data.Cards...)
}

// Categories returns a copy of the category list.
func (s *Store) Categories() []core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Category(nil), s.data.Categories...)
}

// SavingsGoals returns a copy of the goal list.
func (s *Store) SavingsGoals() []core.SavingsGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SavingsGoal(nil), s.data.SavingsGoals...)
}

// CurrentRecord returns a copy of the active month's record.
func (s *Store) CurrentRecord() core.MonthlyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, _ := s.data.EnsureMonth(s.currentMonth)
	return rec.Clone()
}

// Snapshot returns a deep copy of the whole aggregate, for history views
// and round-trip inspection.
func (s *Store) Snapshot() *core.FinanceData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}
