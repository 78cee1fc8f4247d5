package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK             = "ok"
	OutcomeNotFound       = "not_found"
	OutcomeTransportError = "transport_error"
)

var Registry = RegistryExporter{
	total: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "registry",
			Name:      "tag_requests_total",
			Help:      "How many tag pages were requested from the registry.",
		},
		[]string{"outcome"},
	),
	duration: promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "registry",
			Name:      "tag_request_duration_seconds",
			Help:      "How long it took to fetch a tag page.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"outcome"},
	),
}

type RegistryExporter struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func (r *RegistryExporter) NewRequest(outcome string, duration time.Duration) {
	labels := prometheus.Labels{"outcome": outcome}

	r.total.With(labels).Inc()
	r.duration.With(labels).Observe(duration.Seconds())
}
