// Package metrics defines and registers all custom Prometheus metrics of the
// Pushr session router. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pushr/marketplace/internal/core/domain"
)

const namespace = "pushr"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts state-changing events applied to sessions.
// Label:
//   - event: the event kind (e.g. "switch_role", "logout")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session transitions applied, by event kind.",
	},
	[]string{"event"},
)

// ScreensResolvedTotal counts the screen each transition landed on.
// Label:
//   - screen: the resolved screen (e.g. "pusher-jobs")
var ScreensResolvedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screens_resolved_total",
		Help:      "Total number of transitions landing on each screen.",
	},
	[]string{"screen"},
)

// SerializerQueueDepth tracks jobs waiting in each session worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var SerializerQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "serializer_queue_depth",
		Help:      "Current number of session jobs pending in each serializer worker channel.",
	},
	[]string{"worker_id"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthSimulationDuration measures the simulated backend round trip of login and signup.
var AuthSimulationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_simulation_duration_seconds",
		Help:      "Duration of the simulated login/signup backend call.",
		Buckets:   []float64{.1, .25, .5, 1, 1.5, 2, 3, 5},
	},
)

// Recorder feeds the metrics above from the session services.
type Recorder struct{}

func (Recorder) Transition(event string, screen domain.Screen) {
	SessionTransitionsTotal.WithLabelValues(event).Inc()
	ScreensResolvedTotal.WithLabelValues(string(screen)).Inc()
}

func (Recorder) AuthLatency(d time.Duration) {
	AuthSimulationDuration.Observe(d.Seconds())
}
