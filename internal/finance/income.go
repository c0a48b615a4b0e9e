package finance

import (
	"context"

	"fincontrol/internal/core"
	"fincontrol/internal/log"
)

// SetSalary overwrites the current month's salary. Each call replaces the
// previous value; salary is a scalar, not a list of entries.
func (s *Store) SetSalary(ctx context.Context, amount float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.data.EnsureMonth(s.currentMonth)
	rec.Salary = amount
	s.data.MonthlyData[s.currentMonth] = rec
	s.persist(ctx)
	s.notify(ctx, "income", log.OpSet, s.currentMonth)
}

// AddExtraIncome folds the entry's amount into the current month's extra
// income accumulator. The entry's date and description are not retained;
// there is no way to remove extra income once added.
func (s *Store) AddExtraIncome(ctx context.Context, entry core.Income) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.data.EnsureMonth(s.currentMonth)
	rec.ExtraIncome += entry.Amount
	s.data.MonthlyData[s.currentMonth] = rec
	s.persist(ctx)
	s.notify(ctx, "income", log.OpAdd, s.currentMonth)
}
