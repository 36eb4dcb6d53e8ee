package ledger

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory implementa Store em memória (modo degradado)
type Memory struct {
	mu   sync.Mutex
	bets map[string]*Bet
}

func NewMemory() *Memory {
	return &Memory{bets: make(map[string]*Bet)}
}

func (m *Memory) Insert(_ context.Context, b *Bet) error {
	cp := *b
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bets[b.ID] = &cp
	return nil
}

func (m *Memory) Get(_ context.Context, betID string) (*Bet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bets[betID]
	if !ok {
		return nil, ErrBetNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *Memory) ListByUser(_ context.Context, userID string) ([]Bet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Bet
	for _, b := range m.bets {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) Resolve(_ context.Context, betID string, won bool, at time.Time) (*Bet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bets[betID]
	if !ok {
		return nil, ErrBetNotFound
	}
	if b.Status != StatusActive {
		return nil, ErrAlreadyResolved
	}
	b.settle(won, at)
	cp := *b
	return &cp, nil
}
