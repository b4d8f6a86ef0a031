package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the server's Prometheus metrics on a private registry so
// several servers can coexist in one process (tests do).
type Collector struct {
	registry *prometheus.Registry

	runsTotal   *prometheus.CounterVec
	runErrors   *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	runSteps    prometheus.Histogram
	lastDrift   *prometheus.GaugeVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "episim_runs_total",
			Help: "Total number of completed simulation runs",
		}, []string{"model", "method"}),
		runErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "episim_run_errors_total",
			Help: "Total number of rejected run requests",
		}, []string{"reason"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "episim_run_duration_seconds",
			Help:    "Wall time spent integrating one run",
			Buckets: prometheus.DefBuckets,
		}, []string{"model"}),
		runSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "episim_run_steps",
			Help:    "Integration steps per run",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}),
		lastDrift: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "episim_last_drift",
			Help: "Population drift of the most recent run per model",
		}, []string{"model"}),
	}

	c.registry.MustRegister(
		c.runsTotal,
		c.runErrors,
		c.runDuration,
		c.runSteps,
		c.lastDrift,
	)
	return c
}

// RecordRun records one successful run.
func (c *Collector) RecordRun(model, method string, steps int, drift float64, elapsed time.Duration) {
	c.runsTotal.WithLabelValues(model, method).Inc()
	c.runDuration.WithLabelValues(model).Observe(elapsed.Seconds())
	c.runSteps.Observe(float64(steps))
	c.lastDrift.WithLabelValues(model).Set(drift)
}

// RecordError counts a rejected request.
func (c *Collector) RecordError(reason string) {
	c.runErrors.WithLabelValues(reason).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
