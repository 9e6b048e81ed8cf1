package ioweb

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics of the grounding service. Each server has its own registry.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	matches  prometheus.Histogram
	terms    prometheus.Gauge
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "biolexica_requests_total",
			Help: "Number of API requests by route and status code.",
		}, []string{"route", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "biolexica_request_duration_seconds",
			Help:    "Duration of API requests by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		matches: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "biolexica_ground_matches",
			Help:    "Number of matches returned by grounding requests.",
			Buckets: []float64{0, 1, 2, 5, 10, 50},
		}),
		terms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "biolexica_lexicon_terms",
			Help: "Number of records in the served lexicon.",
		}),
	}
}
