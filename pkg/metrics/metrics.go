package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrymomot/schemakit"
	"github.com/dmitrymomot/schemakit/pkg/async"
)

const namespace = "schemakit"

// Result label values for validations_total.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultFault   = "fault"
)

// Collector holds the Prometheus metrics of a validation service.
type Collector struct {
	ValidationsTotal   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
	ErrorsTotal        *prometheus.CounterVec
	AsyncCalls         *prometheus.CounterVec
	PlanCache          *prometheus.CounterVec
	FaultsTotal        *prometheus.CounterVec
	RegistryReloads    *prometheus.CounterVec
	RegistrySchemas    prometheus.Gauge
}

// New registers the collector with the default Prometheus registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collector with reg.
// Use a fresh registry in tests to avoid duplicate registration panics.
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of validations by outcome",
			},
			[]string{"schema", "result"},
		),
		ValidationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "validation_duration_seconds",
				Help:      "Validation duration in seconds",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"schema"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_errors_total",
				Help:      "Total number of field errors by code",
			},
			[]string{"schema", "code"},
		),
		AsyncCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "async_validator_calls_total",
				Help:      "Total number of async validator invocations",
			},
			[]string{"schema"},
		),
		PlanCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "plan_cache_lookups_total",
				Help:      "Compiled plan cache lookups by outcome",
			},
			[]string{"result"},
		),
		FaultsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "faults_total",
				Help:      "Validations aborted by an error, by reason",
			},
			[]string{"schema", "reason"},
		),
		RegistryReloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registry_reloads_total",
				Help:      "Schema registry reloads by outcome",
			},
			[]string{"result"},
		),
		RegistrySchemas: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "registry_schemas",
				Help:      "Number of schemas currently registered",
			},
		),
	}
}

// Observe implements schemakit.Observer.
func (c *Collector) Observe(_ context.Context, r schemakit.Report) {
	name := r.Schema
	if name == "" {
		name = "unnamed"
	}

	if r.CacheHit {
		c.PlanCache.WithLabelValues("hit").Inc()
	} else {
		c.PlanCache.WithLabelValues("miss").Inc()
	}
	if r.AsyncCalls > 0 {
		c.AsyncCalls.WithLabelValues(name).Add(float64(r.AsyncCalls))
	}
	c.ValidationDuration.WithLabelValues(name).Observe(r.Duration.Seconds())

	if r.Fault != nil {
		c.ValidationsTotal.WithLabelValues(name, ResultFault).Inc()
		c.FaultsTotal.WithLabelValues(name, faultReason(r.Fault)).Inc()
		return
	}

	if r.Errors.IsEmpty() {
		c.ValidationsTotal.WithLabelValues(name, ResultValid).Inc()
		return
	}
	c.ValidationsTotal.WithLabelValues(name, ResultInvalid).Inc()
	for _, e := range r.Errors {
		c.ErrorsTotal.WithLabelValues(name, e.Code).Inc()
	}
}

// ObserveReload records a registry reload and the resulting schema count.
func (c *Collector) ObserveReload(count int, err error) {
	if err != nil {
		c.RegistryReloads.WithLabelValues("error").Inc()
		return
	}
	c.RegistryReloads.WithLabelValues("success").Inc()
	c.RegistrySchemas.Set(float64(count))
}

func faultReason(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline"
	case errors.Is(err, async.ErrPanic):
		return "panic"
	case errors.Is(err, schemakit.ErrValidatorFault):
		return "validator"
	default:
		return "schema"
	}
}
