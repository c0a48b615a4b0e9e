package finance

import (
	"context"

	"fincontrol/internal/core"
	"fincontrol/internal/log"
)

// AddExpense assigns a new id and appends the expense to the current
// month's record, preserving insertion order. Expenses are filed under the
// month that is current at insertion time, not under the month of their own
// date field. A credit expense referencing a card bumps that card's used
// limit by the expense amount.
func (s *Store) AddExpense(ctx context.Context, exp core.Expense) core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp.ID = s.newID()

	rec, _ := s.data.EnsureMonth(s.currentMonth)
	rec.Expenses = append(rec.Expenses, exp)
	s.data.MonthlyData[s.currentMonth] = rec

	if exp.PaymentMethod == core.Credit && exp.CardID != "" {
		for i, card := range s.data.Cards {
			if card.ID == exp.CardID {
				s.data.Cards[i].UsedLimit += exp.Amount
				break
			}
		}
	}

	s.persist(ctx)
	s.notify(ctx, "expense", log.OpAdd, exp.ID)

	s.logger.DebugContext(ctx, "Expense added",
		log.FieldEntityID, exp.ID,
		log.FieldMonth, s.currentMonth,
		log.FieldAmount, exp.Amount,
		log.FieldCategoryID, exp.CategoryID)
	return exp
}

// UpdateExpense replaces the expense matching the given id within the
// current month's record. Card used limits are deliberately left alone:
// only add and delete adjust them, so editing an expense's amount, card or
// payment method lets the stored UsedLimit drift from the expense list.
// That asymmetry is the established behavior and is pinned by tests.
func (s *Store) UpdateExpense(ctx context.Context, exp core.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.data.EnsureMonth(s.currentMonth)
	for i, e := range rec.Expenses {
		if e.ID == exp.ID {
			rec.Expenses[i] = exp
			break
		}
	}
	s.data.MonthlyData[s.currentMonth] = rec
	s.persist(ctx)
	s.notify(ctx, "expense", log.OpUpdate, exp.ID)
}

// DeleteExpense removes the expense matching the given id from the current
// month's record. If the removed expense was paid by credit with a card
// reference, that card's used limit is lowered by the expense amount,
// floored at zero.
func (s *Store) DeleteExpense(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, _ := s.data.EnsureMonth(s.currentMonth)

	var removed *core.Expense
	expenses := rec.Expenses[:0]
	for _, e := range rec.Expenses {
		if e.ID == id {
			e := e
			removed = &e
			continue
		}
		expenses = append(expenses, e)
	}
	rec.Expenses = expenses
	s.data.MonthlyData[s.currentMonth] = rec

	if removed != nil && removed.PaymentMethod == core.Credit && removed.CardID != "" {
		for i, card := range s.data.Cards {
			if card.ID == removed.CardID {
				s.data.Cards[i].UsedLimit -= removed.Amount
				if s.data.Cards[i].UsedLimit < 0 {
					s.data.Cards[i].UsedLimit = 0
				}
				break
			}
		}
	}

	s.persist(ctx)
	s.notify(ctx, "expense", log.OpDelete, id)
}
