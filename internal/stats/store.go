package stats

import "context"

// Store define a persistência das estatísticas financeiras.
// Get nunca falha por usuário desconhecido: retorna estatísticas zeradas.
type Store interface {
	Get(ctx context.Context, userID string) (*MoneyStats, error)
	Record(ctx context.Context, userID string, r BetResult) error
}
