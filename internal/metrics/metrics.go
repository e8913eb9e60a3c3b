package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UpdatesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gsi_updates_received_total",
		Help: "The total number of GSI pushes received, by outcome",
	}, []string{"status"})

	PersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gsi_state_persist_failures_total",
		Help: "The total number of failed state file writes",
	})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gsi_context_render_duration_seconds",
		Help:    "Duration of game state context rendering",
		Buckets: prometheus.DefBuckets,
	})

	SnapshotsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gsi_snapshots_saved_total",
		Help: "Total number of state snapshots archived",
	}, []string{"status"})

	HeroesTracked = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "gsi_heroes_tracked",
		Help: "Number of heroes identified in the current match",
	})
)
