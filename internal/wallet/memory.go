package wallet

import (
	"context"
	"sync"
	"time"
)

// account guarda o saldo e um lock próprio que serializa as operações do usuário
type account struct {
	mu        sync.Mutex
	balance   int64
	createdAt time.Time
}

// Memory implementa Store em memória, usado quando o Postgres está indisponível.
// O estado se perde no restart.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]*account
}

func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]*account)}
}

// getOrCreate retorna a conta do usuário, criando com saldo inicial se necessário
func (m *Memory) getOrCreate(userID string) *account {
	m.mu.RLock()
	a, ok := m.accounts[userID]
	m.mu.RUnlock()
	if ok {
		return a
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok = m.accounts[userID]; ok {
		return a
	}
	a = &account{balance: StartingBalance, createdAt: time.Now()}
	m.accounts[userID] = a
	return a
}

func (m *Memory) GetBalance(_ context.Context, userID string) (int64, error) {
	a := m.getOrCreate(userID)
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance, nil
}

func (m *Memory) Award(_ context.Context, userID string, amount int64) (int64, error) {
	a := m.getOrCreate(userID)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance += amount
	return a.balance, nil
}

func (m *Memory) Deduct(_ context.Context, userID string, amount int64) (int64, error) {
	a := m.getOrCreate(userID)
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.balance < amount {
		return a.balance, ErrInsufficientBalance
	}
	a.balance -= amount
	return a.balance, nil
}
