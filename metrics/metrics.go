// Package metrics exposes orchestration activity as Prometheus metrics.
//
// A [Collector]'s methods match the await hook signatures, so wiring is one
// line per call site:
//
//	results, err := await.Gather(ctx, ops, collector.Options()...)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rahaaatul/await"
)

// Collector tracks operation starts, outcomes by kind, durations, and
// streaming progress. All methods are safe for concurrent use.
type Collector struct {
	started   prometheus.Counter
	completed *prometheus.CounterVec
	duration  prometheus.Histogram
	inFlight  prometheus.Gauge
	progress  prometheus.Gauge
}

// NewCollector builds a Collector and registers its metrics with reg.
// It panics on registration conflict, matching prometheus.MustRegister.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		started: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "await_operations_started_total",
			Help: "Operations that began executing.",
		}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "await_operations_completed_total",
			Help: "Operations that finished, labelled by outcome kind.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "await_operation_duration_seconds",
			Help:    "Wall-clock duration of individual operations.",
			Buckets: prometheus.DefBuckets,
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "await_operations_in_flight",
			Help: "Operations currently executing.",
		}),
		progress: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "await_stream_progress_ratio",
			Help: "Fraction of the current streaming call that has completed.",
		}),
	}
	reg.MustRegister(c.started, c.completed, c.duration, c.inFlight, c.progress)
	return c
}

// OnStart satisfies the await.WithOnStart hook signature.
func (c *Collector) OnStart(_ await.TaskInfo) {
	c.started.Inc()
	c.inFlight.Inc()
}

// OnDone satisfies the await.WithOnDone hook signature. Outcomes are
// labelled with the error kind's string form ("ok" for success).
func (c *Collector) OnDone(_ await.TaskInfo, err error, d time.Duration) {
	c.inFlight.Dec()
	c.duration.Observe(d.Seconds())

	outcome := "ok"
	if err != nil {
		outcome = await.KindOf(err).String()
	}
	c.completed.WithLabelValues(outcome).Inc()
}

// OnProgress satisfies the await.WithProgress hook signature.
func (c *Collector) OnProgress(completed, total int) {
	if total <= 0 {
		return
	}
	c.progress.Set(float64(completed) / float64(total))
}

// Options bundles the collector's hooks into await options.
func (c *Collector) Options() []await.Option {
	return []await.Option{
		await.WithOnStart(c.OnStart),
		await.WithOnDone(c.OnDone),
		await.WithProgress(c.OnProgress),
	}
}
