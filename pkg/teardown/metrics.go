package teardown

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	stepTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prvsnr_teardown_step_total",
			Help: "Total number of executed teardown steps",
		},
		[]string{"step", "status"},
	)

	stepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prvsnr_teardown_step_duration_seconds",
			Help:    "Time taken by individual teardown steps",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"step"},
	)
)
