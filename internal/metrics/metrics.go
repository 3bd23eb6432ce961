package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RoutesGenerated    *prometheus.CounterVec
	StageSeconds       *prometheus.HistogramVec
	UpstreamErrors     *prometheus.CounterVec
	SelectorRejections prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RoutesGenerated: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "routegen_routes_generated_total",
			Help: "Total number of route generation attempts by outcome.",
		}, []string{"status"}),
		StageSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routegen_stage_duration_seconds",
			Help:    "Duration of each pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		UpstreamErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "routegen_upstream_errors_total",
			Help: "Total number of errors received from external services.",
		}, []string{"service"}),
		SelectorRejections: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "routegen_selector_rejections_total",
			Help: "Total number of selector proposals rejected by schema validation.",
		}),
	}
}
