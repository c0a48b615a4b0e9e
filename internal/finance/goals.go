package finance

import (
	"context"

	"fincontrol/internal/core"
	"fincontrol/internal/log"
)

// AddSavingsGoal assigns a new id and appends the goal. Goals are global,
// not tied to any month.
func (s *Store) AddSavingsGoal(ctx context.Context, goal core.SavingsGoal) core.SavingsGoal {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal.ID = s.newID()
	s.data.SavingsGoals = append(s.data.SavingsGoals, goal)
	s.persist(ctx)
	s.notify(ctx, "goal", log.OpAdd, goal.ID)
	return goal
}

// UpdateSavingsGoal replaces the goal matching the given id. Unknown ids
// are a no-op.
func (s *Store) UpdateSavingsGoal(ctx context.Context, goal core.SavingsGoal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, g := range s.data.SavingsGoals {
		if g.ID == goal.ID {
			s.data.SavingsGoals[i] = goal
			break
		}
	}
	s.persist(ctx)
	s.notify(ctx, "goal", log.OpUpdate, goal.ID)
}

// DeleteSavingsGoal removes the goal matching the given id.
func (s *Store) DeleteSavingsGoal(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goals := s.data.SavingsGoals[:0]
	for _, g := range s.data.SavingsGoals {
		if g.ID != id {
			goals = append(goals, g)
		}
	}
	s.data.SavingsGoals = goals
	s.persist(ctx)
	s.notify(ctx, "goal", log.OpDelete, id)
}
