package ledger

import (
	"context"
	"errors"
	"time"
)

var (
	ErrBetNotFound     = errors.New("bet not found")
	ErrAlreadyResolved = errors.New("bet already resolved")
)

// Store define a persistência de apostas.
// Resolve faz a transição active -> won|lost de forma atômica: uma segunda
// tentativa sobre a mesma aposta recebe ErrAlreadyResolved sem efeito algum.
type Store interface {
	Insert(ctx context.Context, b *Bet) error
	Get(ctx context.Context, betID string) (*Bet, error)
	ListByUser(ctx context.Context, userID string) ([]Bet, error)
	Resolve(ctx context.Context, betID string, won bool, at time.Time) (*Bet, error)
}
