// Package metrics defines the Prometheus instrumentation for the HTTP
// surface.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters exposed at /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	SessionsCreated *prometheus.CounterVec
	FieldUpdates    *prometheus.CounterVec
	Finalizations   *prometheus.CounterVec
	Regenerations   prometheus.Counter
	SessionsDeleted prometheus.Counter
}

// New creates and registers the metric set on a private registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		SessionsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_sessions_created_total",
				Help: "Total number of drafting sessions created",
			},
			[]string{"kind"},
		),
		FieldUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_field_updates_total",
				Help: "Total number of field updates applied",
			},
			[]string{"kind"},
		),
		Finalizations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inkwell_finalizations_total",
				Help: "Total number of finalize attempts by result",
			},
			[]string{"result"},
		),
		Regenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_regenerations_total",
			Help: "Total number of document regenerations",
		}),
		SessionsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inkwell_sessions_deleted_total",
			Help: "Total number of sessions tombstoned",
		}),
	}
	m.Registry.MustRegister(
		m.SessionsCreated,
		m.FieldUpdates,
		m.Finalizations,
		m.Regenerations,
		m.SessionsDeleted,
	)
	return m
}
