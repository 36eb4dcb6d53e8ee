package room

import "github.com/prometheus/client_golang/prometheus"

// Métricas Prometheus do canal realtime; registradas no main do serviço
var (
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "goose_ws_connections",
		Help: "Clientes WebSocket conectados",
	})
	roomsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "goose_rooms_active",
		Help: "Salas ativas",
	})
	messagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "goose_ws_messages_sent_total",
		Help: "Total de mensagens room-updated enviadas",
	})
)

// Collectors expõe as métricas do pacote pra registro via prometheus.MustRegister
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{wsConnections, roomsActive, messagesSent}
}
