// Package memory implements the document store ports in process. It backs
// the test suites and local development without a running store service.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/crickclub/club_funds_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Store holds one ledger document and one roster in memory. Updates run the
// same read-whole, mutate, replace-whole cycle as the real store, serialized
// behind a mutex.
type Store struct {
	mu      sync.Mutex
	doc     domain.LedgerDocument
	players []domain.Player
}

// NewStore returns an empty store with zeroed totals.
func NewStore() *Store {
	return &Store{
		doc: domain.LedgerDocument{
			TotalBalance: decimal.Zero,
			TotalExpense: decimal.Zero,
		},
	}
}

// SeedRoster replaces the roster contents.
func (s *Store) SeedRoster(players []domain.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = players
}

// GetDocument returns a deep copy of the current document.
func (s *Store) GetDocument(ctx context.Context) (*domain.LedgerDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDocument(&s.doc)
}

// UpdateDocument applies mutate to a copy of the document and commits it only
// when mutate succeeds.
func (s *Store) UpdateDocument(ctx context.Context, mutate func(doc *domain.LedgerDocument) error) (*domain.LedgerDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	working, err := cloneDocument(&s.doc)
	if err != nil {
		return nil, err
	}
	if err := mutate(working); err != nil {
		return nil, err
	}
	s.doc = *working
	return cloneDocument(working)
}

// GetRoster returns the seeded players.
func (s *Store) GetRoster(ctx context.Context) ([]domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	players := make([]domain.Player, len(s.players))
	copy(players, s.players)
	return players, nil
}

// cloneDocument copies the document through its JSON form, matching the
// serialization boundary the real store imposes.
func cloneDocument(doc *domain.LedgerDocument) (*domain.LedgerDocument, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("cloning document: %w", err)
	}
	clone := &domain.LedgerDocument{}
	if err := json.Unmarshal(raw, clone); err != nil {
		return nil, fmt.Errorf("cloning document: %w", err)
	}
	return clone, nil
}
