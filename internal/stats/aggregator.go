package stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 30 * time.Second

func cacheKey(userID string) string { return "money_stats:" + userID }

// Aggregator aplica resultados de apostas às estatísticas e atende leituras,
// com cache Redis opcional na frente do Store. As estatísticas só mudam
// através de Record; falha de cache nunca derruba a operação.
type Aggregator struct {
	log   *zap.Logger
	store Store
	rdb   *redis.Client // nil desabilita o cache
}

func NewAggregator(log *zap.Logger, store Store, rdb *redis.Client) *Aggregator {
	return &Aggregator{log: log, store: store, rdb: rdb}
}

// Record acumula o resultado e invalida o cache do usuário
func (a *Aggregator) Record(ctx context.Context, userID string, r BetResult) error {
	if err := a.store.Record(ctx, userID, r); err != nil {
		return err
	}
	if a.rdb != nil {
		if err := a.rdb.Del(ctx, cacheKey(userID)).Err(); err != nil {
			a.log.Warn("stats cache invalidate failed", zap.String("userId", userID), zap.Error(err))
		}
	}
	return nil
}

// Get retorna as estatísticas do usuário, preferencialmente do cache
func (a *Aggregator) Get(ctx context.Context, userID string) (*MoneyStats, error) {
	if a.rdb != nil {
		if b, err := a.rdb.Get(ctx, cacheKey(userID)).Bytes(); err == nil {
			var s MoneyStats
			if json.Unmarshal(b, &s) == nil {
				return &s, nil
			}
		}
	}

	s, err := a.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if a.rdb != nil {
		if b, err := json.Marshal(s); err == nil {
			_ = a.rdb.Set(ctx, cacheKey(userID), b, cacheTTL).Err()
		}
	}
	return s, nil
}
