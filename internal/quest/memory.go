package quest

import (
	"context"
	"sort"
	"sync"
)

// Memory implementa Store em memória (modo degradado)
type Memory struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]*Record)}
}

func (m *Memory) Save(_ context.Context, r *Record) error {
	cp := *r
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.QuestID] = &cp
	return nil
}

func (m *Memory) ListByUser(_ context.Context, userID string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Record
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}
