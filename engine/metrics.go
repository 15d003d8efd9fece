package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricJitterEMA = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sim_tick_jitter_ema_seconds",
		Help: "Exponential moving average of tick overshoot past the deadline.",
	})

	metricLateTicks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_tick_late_seconds",
		Help:    "How late each tick finished relative to its deadline.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	metricTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sim_ticks_total",
		Help: "Ticks run since boot.",
	})
)
