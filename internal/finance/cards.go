package finance

import (
	"context"

	"fincontrol/internal/core"
	"fincontrol/internal/log"
)

// AddCard assigns a new id and appends the card. The stored card is
// returned. Numeric fields are taken as supplied; lenient parsing of raw
// input is the caller's job (core.ParseAmount / core.ParseDayOfMonth).
func (s *Store) AddCard(ctx context.Context, card core.CreditCard) core.CreditCard {
	s.mu.Lock()
	defer s.mu.Unlock()

	card.ID = s.newID()
	s.data.Cards = append(s.data.Cards, card)
	s.persist(ctx)
	s.notify(ctx, "card", log.OpAdd, card.ID)

	s.logger.DebugContext(ctx, "Card added",
		log.FieldCardID, card.ID, log.FieldOperation, log.OpAdd)
	return card
}

// UpdateCard replaces the card matching the given id. Unknown ids are a
// no-op.
func (s *Store) UpdateCard(ctx context.Context, card core.CreditCard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.data.Cards {
		if c.ID == card.ID {
			s.data.Cards[i] = card
			break
		}
	}
	s.persist(ctx)
	s.notify(ctx, "card", log.OpUpdate, card.ID)
}

// DeleteCard removes the card matching the given id. Expenses referencing
// it are left untouched; their cardId dangles and consumers resolve it as
// unknown.
func (s *Store) DeleteCard(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := s.data.Cards[:0]
	for _, c := range s.data.Cards {
		if c.ID != id {
			cards = append(cards, c)
		}
	}
	s.data.Cards = cards
	s.persist(ctx)
	s.notify(ctx, "card", log.OpDelete, id)
}
