package salt

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

var (
	stateApplyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prvsnr_salt_state_apply_duration_seconds",
			Help:    "Time taken to apply a salt state",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	stateApplyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prvsnr_salt_state_apply_total",
			Help: "Total number of salt state applications",
		},
		[]string{"status"},
	)

	functionRunTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prvsnr_salt_function_run_total",
			Help: "Total number of salt function runs",
		},
		[]string{"status"},
	)
)
