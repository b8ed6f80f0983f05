// Package metrics holds the Prometheus collectors of the ordering service.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Transition results.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

type Metrics struct {
	transitions *prometheus.CounterVec
	expired     prometheus.Counter
	requests    *prometheus.CounterVec
	latencyMS   *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg. It panics on duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_transitions_total",
			Help: "Order lifecycle steps by action and result.",
		}, []string{"action", "result"}),
		expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_expired_total",
			Help: "Pending unpaid orders cancelled by the expiry job.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"route", "status"}),
		latencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "HTTP request latency in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
	}

	reg.MustRegister(m.transitions, m.expired, m.requests, m.latencyMS)
	return m
}

// ObserveTransition counts one lifecycle step. Guard violations count as rejected.
// A nil *Metrics records nothing.
func (m *Metrics) ObserveTransition(action string, err error) {
	if m == nil {
		return
	}

	result := ResultSuccess
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrInvalidState):
		result = ResultRejected
	default:
		result = ResultError
	}
	m.transitions.WithLabelValues(action, result).Inc()
}

func (m *Metrics) ObserveExpired(count int) {
	if m == nil {
		return
	}
	m.expired.Add(float64(count))
}

// EchoMiddleware records request count and latency per registered route.
func (m *Metrics) EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)

			m.requests.WithLabelValues(route, status).Inc()
			m.latencyMS.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
			return nil
		}
	}
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
