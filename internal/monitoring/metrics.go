package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the application's prometheus metrics.
type Registry struct {
	reg *prometheus.Registry

	PipelineRuns        prometheus.Counter
	PipelineFailures    prometheus.Counter
	ReviewsLoaded       prometheus.Counter
	ReviewsDropped      prometheus.Counter
	PipelineDurationSec prometheus.Histogram

	HTTPRequests *prometheus.CounterVec
	CountUpdates prometheus.Counter
	CountSkips   prometheus.Counter
}

// NewRegistry creates and registers the metric set.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	runs := prometheus.NewCounter(prometheus.CounterOpts{Name: "reputation_pipeline_runs_total"})
	failures := prometheus.NewCounter(prometheus.CounterOpts{Name: "reputation_pipeline_failures_total"})
	loaded := prometheus.NewCounter(prometheus.CounterOpts{Name: "reputation_reviews_loaded_total"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "reputation_reviews_dropped_total"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "reputation_pipeline_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reputation_http_requests_total",
	}, []string{"path", "status"})
	countUpdates := prometheus.NewCounter(prometheus.CounterOpts{Name: "reputation_review_count_updates_total"})
	countSkips := prometheus.NewCounter(prometheus.CounterOpts{Name: "reputation_review_count_skips_total"})

	r.MustRegister(runs, failures, loaded, dropped, duration, requests, countUpdates, countSkips)

	return &Registry{
		reg:                 r,
		PipelineRuns:        runs,
		PipelineFailures:    failures,
		ReviewsLoaded:       loaded,
		ReviewsDropped:      dropped,
		PipelineDurationSec: duration,
		HTTPRequests:        requests,
		CountUpdates:        countUpdates,
		CountSkips:          countSkips,
	}
}

// Handler exposes the registry for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
