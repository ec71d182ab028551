package ws

import "github.com/prometheus/client_golang/prometheus"

// Gauges exposed at /metrics alongside the HTTP rate-limiter counters in
// internal/http/middleware/metrics.go, same registration pattern.
var (
	roomsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rooms_active",
		Help: "Number of rooms currently tracked by the RoomManager",
	})
	gamesInProgress = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "games_in_progress",
		Help: "Number of rooms with a live game",
	})
	wsClientsConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_clients_connected",
		Help: "Number of authenticated websocket connections",
	})
)

func init() {
	prometheus.MustRegister(roomsActive, gamesInProgress, wsClientsConnected)
}
