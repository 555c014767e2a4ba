// Package metrics holds the prometheus collectors for HTTP traffic and
// booking events.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gohotel"

// Metrics groups every collector the service exports. A nil *Metrics is
// valid and records nothing, so services can run without instrumentation.
type Metrics struct {
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	reservationsCreated  prometheus.Counter
	reservationsRejected *prometheus.CounterVec
	deletesBlocked       *prometheus.CounterVec
}

// New registers the collectors on reg. A nil reg means the default registerer.
// Registering twice on the same registry reuses the existing collectors.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return &Metrics{
		httpRequests: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"})),
		httpDuration: register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"})),
		reservationsCreated: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Reservations successfully stored.",
		})),
		reservationsRejected: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_rejected_total",
			Help:      "Reservation writes refused by a booking rule.",
		}, []string{"reason"})),
		deletesBlocked: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deletes_blocked_total",
			Help:      "Deletes refused because reservations still reference the entity.",
		}, []string{"entity"})),
	}
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("metrics: collector already registered with a different type: %v", err))
			}
			return existing
		}
		panic(fmt.Sprintf("metrics: register collector: %v", err))
	}
	return c
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, fmt.Sprintf("%d", status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ReservationCreated counts a stored reservation.
func (m *Metrics) ReservationCreated() {
	if m == nil {
		return
	}
	m.reservationsCreated.Inc()
}

// ReservationRejected counts a reservation write refused for reason.
func (m *Metrics) ReservationRejected(reason string) {
	if m == nil {
		return
	}
	m.reservationsRejected.WithLabelValues(reason).Inc()
}

// DeleteBlocked counts a delete refused for entity ("client" or "chambre").
func (m *Metrics) DeleteBlocked(entity string) {
	if m == nil {
		return
	}
	m.deletesBlocked.WithLabelValues(entity).Inc()
}
