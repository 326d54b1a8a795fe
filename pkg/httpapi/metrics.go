package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestLatency measures handler time. Labels: route
	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wordfix",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1.0},
	}, []string{"route"})

	// requestsTotal counts served requests. Labels: route, status
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordfix",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route and status code",
	}, []string{"route", "status"})

	// wordsTotal counts corrected words. Labels: result (changed, unchanged)
	wordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordfix",
		Subsystem: "corrector",
		Name:      "words_total",
		Help:      "Total words run through the corrector",
	}, []string{"result"})
)

func recordResult(changed bool) {
	if changed {
		wordsTotal.WithLabelValues("changed").Inc()
	} else {
		wordsTotal.WithLabelValues("unchanged").Inc()
	}
}
