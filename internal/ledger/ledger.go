package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goosetokens/goose-platform-poc/internal/stats"
	"github.com/goosetokens/goose-platform-poc/internal/wallet"
)

// Ledger coordena o ciclo de vida das apostas: registro, resolução,
// crédito de ganhos na carteira e atualização das estatísticas.
// Saldos só são alterados através da carteira, nunca direto.
type Ledger struct {
	log    *zap.Logger
	store  Store
	wallet wallet.Store
	stats  *stats.Aggregator
}

func New(log *zap.Logger, store Store, w wallet.Store, agg *stats.Aggregator) *Ledger {
	return &Ledger{log: log, store: store, wallet: w, stats: agg}
}

// Create registra uma aposta ativa e retorna o id gerado.
// O débito do stake é contrato do chamador: precisa ser confirmado via
// wallet.Deduct antes da aposta ser aceita.
func (l *Ledger) Create(ctx context.Context, userID, line string, stake int64, sponsor string, multiplier float64, potentialWinnings int64) (string, error) {
	b := &Bet{
		ID:                uuid.NewString(),
		UserID:            userID,
		Line:              line,
		Stake:             stake,
		Sponsor:           sponsor,
		Multiplier:        multiplier,
		PotentialWinnings: potentialWinnings,
		Status:            StatusActive,
		CreatedAt:         time.Now(),
	}
	if err := l.store.Insert(ctx, b); err != nil {
		return "", err
	}
	return b.ID, nil
}

// Resolve aplica o resultado da aposta: credita ganhos quando vencida e
// acumula o resultado nas estatísticas. A transição de estado no Store é
// atômica, então as estatísticas nunca contam a mesma aposta duas vezes.
func (l *Ledger) Resolve(ctx context.Context, betID string, won bool) (*Bet, error) {
	b, err := l.store.Resolve(ctx, betID, won, time.Now())
	if err != nil {
		return nil, err
	}

	if won {
		if _, err := l.wallet.Award(ctx, b.UserID, b.Winnings); err != nil {
			return nil, err
		}
	}

	if err := l.stats.Record(ctx, b.UserID, stats.BetResult{
		Sponsor:  b.Sponsor,
		Stake:    b.Stake,
		Won:      won,
		Winnings: b.Winnings,
	}); err != nil {
		l.log.Error("money stats update failed", zap.String("betId", b.ID), zap.Error(err))
	}

	return b, nil
}

// Get retorna uma aposta pelo id
func (l *Ledger) Get(ctx context.Context, betID string) (*Bet, error) {
	return l.store.Get(ctx, betID)
}

// ListByUser retorna as apostas do usuário em ordem de criação
func (l *Ledger) ListByUser(ctx context.Context, userID string) ([]Bet, error) {
	return l.store.ListByUser(ctx, userID)
}
