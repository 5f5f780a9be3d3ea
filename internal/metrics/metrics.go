// Package metrics exposes Prometheus metrics for filter passes.
package metrics

import (
	"net/http"
	"time"

	"github.com/abdulachik/feedfilter/internal/feed"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feedfilter"

// Metrics holds the filter metrics on their own registry.
type Metrics struct {
	registry *prometheus.Registry

	PostsClassified prometheus.Counter
	PostsHidden     *prometheus.CounterVec
	Passes          *prometheus.CounterVec
	PassFailures    *prometheus.CounterVec
	PassDuration    prometheus.Histogram
}

// New creates the metrics and registers them, plus the Go runtime
// collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PostsClassified: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_classified_total",
			Help:      "Posts evaluated by a filter pass.",
		}),
		PostsHidden: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_hidden_total",
			Help:      "Posts hidden, by reason.",
		}, []string{"reason"}),
		Passes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passes_total",
			Help:      "Filter passes run, by trigger.",
		}, []string{"trigger"}),
		PassFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pass_failures_total",
			Help:      "Filter passes that failed, by trigger.",
		}, []string{"trigger"}),
		PassDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Duration of a filter pass.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// ObservePass records a completed pass.
func (m *Metrics) ObservePass(trigger string, res feed.Result, d time.Duration) {
	if m == nil {
		return
	}

	m.Passes.WithLabelValues(trigger).Inc()
	m.PassDuration.Observe(d.Seconds())
	m.PostsClassified.Add(float64(res.Total))
	m.PostsHidden.WithLabelValues("keyword").Add(float64(res.HiddenByKeyword))
	m.PostsHidden.WithLabelValues("geo_popular").Add(float64(res.HiddenByGeo))
	m.PostsHidden.WithLabelValues("ad").Add(float64(res.HiddenAds))
}

// ObserveFailure records a pass that could not complete.
func (m *Metrics) ObserveFailure(trigger string) {
	if m == nil {
		return
	}
	m.PassFailures.WithLabelValues(trigger).Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
