package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grammarcheck_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// CheckDuration tracks grammar check latency by outcome (ok or error kind).
	CheckDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "grammarcheck_check_duration_seconds",
		Help:    "Time spent on grammar check inference.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"outcome"})

	// InputChars tracks the distribution of input text lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grammarcheck_input_chars",
		Help:    "Number of characters in grammar check input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000},
	})

	// IssuesFound tracks how many corrections each successful check returns.
	IssuesFound = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "grammarcheck_issues_found",
		Help:    "Number of grammar issues returned per check.",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
	})

	// CheckErrors counts failed checks by error kind.
	CheckErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grammarcheck_check_errors_total",
		Help: "Failed grammar checks by error kind.",
	}, []string{"kind"})

	// InferenceAvailable tracks whether the inference service answered the last health probe.
	InferenceAvailable = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "grammarcheck_inference_available",
		Help: "Whether the inference service is reachable (1) or not (0).",
	})
)
