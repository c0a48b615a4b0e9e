package finance

import (
	"context"

	"fincontrol/internal/core"
	"fincontrol/internal/log"
)

// AddCategory assigns a new id, marks the category custom and appends it.
// The stored category is returned.
func (s *Store) AddCategory(ctx context.Context, cat core.Category) core.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat.ID = s.newID()
	cat.IsCustom = true
	s.data.Categories = append(s.data.Categories, cat)
	s.persist(ctx)
	s.notify(ctx, "category", log.OpAdd, cat.ID)
	return cat
}

// UpdateCategory replaces the category matching the given id. Seeded
// categories can be edited, just not deleted. Unknown ids are a no-op.
func (s *Store) UpdateCategory(ctx context.Context, cat core.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.data.Categories {
		if c.ID == cat.ID {
			s.data.Categories[i] = cat
			break
		}
	}
	s.persist(ctx)
	s.notify(ctx, "category", log.OpUpdate, cat.ID)
}

// DeleteCategory removes the category matching the given id, but only when
// it is custom; the seeded set is retained silently. Expenses referencing a
// removed category keep their dangling categoryId.
func (s *Store) DeleteCategory(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := s.data.Categories[:0]
	for _, c := range s.data.Categories {
		if c.ID != id || !c.IsCustom {
			cats = append(cats, c)
		}
	}
	s.data.Categories = cats
	s.persist(ctx)
	s.notify(ctx, "category", log.OpDelete, id)
}
