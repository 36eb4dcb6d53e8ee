package api

import "github.com/prometheus/client_golang/prometheus"

// Métricas Prometheus da API; registradas no main do serviço
var (
	betsPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "goose_bets_placed_total",
		Help: "Total de apostas aceitas",
	})
	betsResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "goose_bets_resolved_total",
		Help: "Total de apostas resolvidas por resultado",
	}, []string{"result"})
	tokensAwarded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "goose_tokens_awarded_total",
		Help: "Total de GooseTokens creditados",
	})
)

// Collectors expõe as métricas do pacote pra registro via prometheus.MustRegister
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{betsPlaced, betsResolved, tokensAwarded}
}
