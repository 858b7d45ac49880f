package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	previewRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tonekit",
		Subsystem: "server",
		Name:      "preview_renders_total",
		Help:      "Preview images rendered, by result.",
	}, []string{"result"})

	previewDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tonekit",
		Subsystem: "server",
		Name:      "preview_duration_seconds",
		Help:      "Preview render duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tonekit",
		Subsystem: "server",
		Name:      "ws_connections_active",
		Help:      "Open WebSocket event streams.",
	})

	eventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tonekit",
		Subsystem: "server",
		Name:      "events_dropped_total",
		Help:      "Palette events dropped for slow WebSocket subscribers.",
	})
)
