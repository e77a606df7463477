// Package metrics exposes Prometheus instrumentation: HTTP request counters
// and latency histograms via middleware, a published-event counter for the
// realtime hub, and the /metrics exposition endpoint.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors for one server instance.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	eventsPublished *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry.
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, route and status.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: prometheus.Labels{"service": serviceName},
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "realtime_events_published_total",
			Help:        "Mutation events published to the realtime hub, by type.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"type"}),
	}

	reg.MustRegister(m.requestsTotal, m.requestDuration, m.eventsPublished)
	return m
}

// Middleware instruments HTTP requests.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// EventPublished records one published realtime event.
func (m *Metrics) EventPublished(eventType string) {
	m.eventsPublished.WithLabelValues(eventType).Inc()
}

// Handler returns the /metrics exposition handler.
func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
