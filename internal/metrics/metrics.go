// Package metrics holds the prometheus collectors shared by the server and
// the CLI.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "showcase"

type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	uploadBytes     *prometheus.HistogramVec
	fetchesTotal    *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers every collector on reg. A nil reg gets a private registry.
// Registering twice on the same registry panics.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{gatherer: reg}

	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// 10KB .. 10MB
	m.uploadBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_size_bytes",
			Help:      "Size of stored images by entity kind.",
			Buckets:   prometheus.ExponentialBuckets(10240, 4, 6),
		},
		[]string{"kind"},
	)

	m.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collection_fetches_total",
			Help:      "Client collection fetches by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	reg.MustRegister(m.requestsTotal, m.requestDuration, m.uploadBytes, m.fetchesTotal)
	return m
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) ObserveUpload(kind string, size int64) {
	m.uploadBytes.WithLabelValues(kind).Observe(float64(size))
}

func (m *Metrics) ObserveFetch(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.fetchesTotal.WithLabelValues(kind, outcome).Inc()
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
