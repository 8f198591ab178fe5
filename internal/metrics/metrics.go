// Package metrics exposes prometheus collectors for player operations.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"videoplayer-service/internal/player"
)

var (
	Operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videoplayer_operations_total",
			Help: "Player operations by outcome (ok or the failure kind)",
		},
		[]string{"operation", "outcome"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videoplayer_events_published_total",
			Help: "Events published to the broadcast channel",
		},
		[]string{"type", "result"},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "videoplayer_websocket_clients",
			Help: "Connected websocket clients",
		},
	)
)

// Outcome maps an operation error to a label value.
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var pe *player.Error
	if errors.As(err, &pe) {
		return pe.Kind.String()
	}
	return "error"
}

func ObserveOperation(op string, err error) {
	Operations.WithLabelValues(op, Outcome(err)).Inc()
}
