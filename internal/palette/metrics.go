package palette

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	paletteLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tonekit",
		Subsystem: "palette",
		Name:      "loads_total",
		Help:      "Base palette loads, by result.",
	}, []string{"result"})

	paletteTransforms = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tonekit",
		Subsystem: "palette",
		Name:      "transforms_total",
		Help:      "Transform passes applied to the active palette, by action.",
	}, []string{"action"})

	malformedColors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tonekit",
		Subsystem: "palette",
		Name:      "malformed_colors_total",
		Help:      "Catalog colors that failed to parse and were replaced with black.",
	})

	indexClamped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tonekit",
		Subsystem: "palette",
		Name:      "index_clamped_total",
		Help:      "Out-of-range palette indexes corrected to 0.",
	})

	activeColors = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tonekit",
		Subsystem: "palette",
		Name:      "active_colors",
		Help:      "Number of colors in the most recently loaded palette.",
	})
)
