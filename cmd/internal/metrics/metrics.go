// Package metrics exposes Prometheus counters for contract registrations.
package metrics

import (
	"context"
	"errors"
	"rentalcontracts/cmd/internal/registration"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration tracks how runs end and what they leave behind.
type Registration struct {
	Runs        *prometheus.CounterVec
	Steps       *prometheus.CounterVec
	Orphans     prometheus.Counter
	RunDuration prometheus.Histogram
}

// New registers every registration metric on reg.
func New(reg prometheus.Registerer) *Registration {
	factory := promauto.With(reg)
	return &Registration{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rentalcontracts_registration_runs_total",
			Help: "Registration runs by outcome and the phase they stopped in",
		}, []string{"outcome", "phase"}),
		Steps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rentalcontracts_registration_steps_total",
			Help: "Executed registration steps by record kind, created or reused",
		}, []string{"kind", "action"}),
		Orphans: factory.NewCounter(prometheus.CounterOpts{
			Name: "rentalcontracts_orphaned_records_total",
			Help: "Records created by runs that failed afterwards",
		}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "rentalcontracts_registration_duration_seconds",
			Help:    "Duration of registration runs, lookups included",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}
}

// Observer returns an observer for a single run. The run's clock starts now.
func (m *Registration) Observer() registration.Observer {
	start := time.Now()
	return registration.ObserverFunc(func(_ context.Context, ev registration.Event) {
		switch ev.Type {
		case registration.EventStepCreated:
			m.Steps.WithLabelValues(string(ev.Kind), "created").Inc()

		case registration.EventStepPublished:
			m.Steps.WithLabelValues(string(ev.Kind), "reused").Inc()

		case registration.EventRunSucceeded:
			m.Runs.WithLabelValues("succeeded", string(ev.Phase)).Inc()
			m.RunDuration.Observe(time.Since(start).Seconds())

		case registration.EventRunFailed:
			m.Runs.WithLabelValues("failed", string(ev.Phase)).Inc()
			m.RunDuration.Observe(time.Since(start).Seconds())

			var failed *registration.RegistrationFailed
			if errors.As(ev.Err, &failed) {
				m.Orphans.Add(float64(len(failed.Created)))
			}
		}
	})
}
