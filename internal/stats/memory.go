package stats

import (
	"context"
	"sync"
)

// Memory implementa Store em memória (modo degradado)
type Memory struct {
	mu    sync.Mutex
	stats map[string]*MoneyStats
}

func NewMemory() *Memory {
	return &Memory{stats: make(map[string]*MoneyStats)}
}

func (m *Memory) Get(_ context.Context, userID string) (*MoneyStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[userID]
	if !ok {
		return NewMoneyStats(userID), nil
	}
	return s.clone(), nil
}

func (m *Memory) Record(_ context.Context, userID string, r BetResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stats[userID]
	if !ok {
		s = NewMoneyStats(userID)
		m.stats[userID] = s
	}
	s.apply(r)
	return nil
}
