package memory

import (
	"context"
	"sort"
	"sync"

	"healthyledger/internal/core"
	"healthyledger/internal/ledgerstore"
)

var _ ledgerstore.Backend = (*Store)(nil)

// Store keeps ledgers in process memory. Contents are lost on exit.
type Store struct {
	mu      sync.Mutex
	ledgers map[string]core.Ledger
	saves   int
}

func New() *Store {
	return &Store{ledgers: map[string]core.Ledger{}}
}

// Load returns a copy of the stored ledger, or an empty ledger.
func (s *Store) Load(_ context.Context, user string) (core.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[user]
	if !ok {
		return core.Ledger{}, nil
	}
	return l.Clone(), nil
}

// Save replaces the user's ledger with a copy of l.
func (s *Store) Save(_ context.Context, user string, l core.Ledger) error {
	if err := l.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil {
		l = core.Ledger{}
	}
	s.ledgers[user] = l.Clone()
	s.saves++
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.ledgers))
	for u := range s.ledgers {
		out = append(out, u)
	}
	sort.Strings(out)
	return out, nil
}

// Saves reports how many successful saves the store has seen.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
