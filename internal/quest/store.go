package quest

import (
	"context"
	"time"
)

// Record é o registro de uma quest completada por um usuário.
// Chaveado por quest_id: completar de novo sobrescreve o registro.
type Record struct {
	QuestID       string    `json:"quest_id"`
	UserID        string    `json:"user_id"`
	Status        string    `json:"status"`
	TokensAwarded int64     `json:"tokens_awarded"`
	CompletedAt   time.Time `json:"completed_at"`
}

// Store define a persistência dos registros de quests completadas
type Store interface {
	Save(ctx context.Context, r *Record) error
	ListByUser(ctx context.Context, userID string) ([]Record, error)
}
