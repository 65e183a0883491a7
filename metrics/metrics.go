// Package metrics exposes the event runtime's operational counters as
// Prometheus collectors: pipeline queue depth, dispatch latency, the
// generator registry's current size, and handler exception counts.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors is the set of runtime metrics a tree can be wired to report
// into. A nil *Collectors is safe to call every method on and does
// nothing, so instrumentation can be added to a tree unconditionally and
// only costs anything once a non-nil Collectors is wired in.
type Collectors struct {
	queueDepth       *prometheus.GaugeVec
	dispatchLatency  *prometheus.HistogramVec
	generatorCount   prometheus.Gauge
	handlerErrors    *prometheus.CounterVec
}

// New builds a Collectors instance. Call Register to attach it to a
// Prometheus registerer before any metric is observed; an unregistered
// Collectors still records observations, it just isn't exported anywhere.
func New() *Collectors {
	return &Collectors{
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "eventrt",
			Name:      "pipeline_queue_depth",
			Help:      "Number of entries currently queued on a pipeline.",
		}, []string{"pipeline"}),
		dispatchLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "eventrt",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent running all handlers matching one fire.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event"}),
		generatorCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "eventrt",
			Name:      "generator_registry_size",
			Help:      "Number of currently registered generators (non-zero means not quiescent).",
		}),
		handlerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "eventrt",
			Name:      "handler_errors_total",
			Help:      "Count of handler panics/errors routed to HandlingError, by event type.",
		}, []string{"event"}),
	}
}

// Register attaches every collector to reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	if c == nil {
		return nil
	}
	for _, coll := range []prometheus.Collector{c.queueDepth, c.dispatchLatency, c.generatorCount, c.handlerErrors} {
		if err := reg.Register(coll); err != nil {
			return err
		}
	}
	return nil
}

// ObserveQueueDepth records pipeline's current queue length.
func (c *Collectors) ObserveQueueDepth(pipeline string, depth int) {
	if c == nil {
		return
	}
	c.queueDepth.WithLabelValues(pipeline).Set(float64(depth))
}

// ObserveDispatch records how long dispatching eventName took.
func (c *Collectors) ObserveDispatch(eventName string, d time.Duration) {
	if c == nil {
		return
	}
	c.dispatchLatency.WithLabelValues(eventName).Observe(d.Seconds())
}

// SetGeneratorCount records the generator registry's current size.
func (c *Collectors) SetGeneratorCount(n int) {
	if c == nil {
		return
	}
	c.generatorCount.Set(float64(n))
}

// IncHandlerErrors increments the handler-error counter for eventName.
func (c *Collectors) IncHandlerErrors(eventName string) {
	if c == nil {
		return
	}
	c.handlerErrors.WithLabelValues(eventName).Inc()
}
