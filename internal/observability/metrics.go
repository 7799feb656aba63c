package observability

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	btx "github.com/comalice/behaviortreex"
	"github.com/comalice/behaviortreex/scheduler"
)

var (
	registerOnce sync.Once

	behaviorsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "behaviortreex",
			Subsystem: "scheduler",
			Name:      "started_total",
			Help:      "Behaviors started on the scheduler.",
		},
		[]string{"behavior"},
	)
	behaviorsTerminated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "behaviortreex",
			Subsystem: "scheduler",
			Name:      "terminated_total",
			Help:      "Behaviors that left the scheduler, by final status.",
		},
		[]string{"behavior", "status"},
	)
	roundsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "behaviortreex",
			Subsystem: "scheduler",
			Name:      "rounds_total",
			Help:      "Completed scheduler rounds.",
		},
	)
	roundSteps = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "behaviortreex",
			Subsystem: "scheduler",
			Name:      "round_steps",
			Help:      "Entries ticked per scheduler round.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(behaviorsStarted, behaviorsTerminated, roundsTotal, roundSteps)
	})
}

// SchedulerMetrics is a scheduler.Observer recording Prometheus metrics.
// Behaviors are labelled by their Name method when they have one and by
// their Go type otherwise.
type SchedulerMetrics struct{}

var _ scheduler.Observer = (*SchedulerMetrics)(nil)

func NewSchedulerMetrics() *SchedulerMetrics {
	RegisterMetrics()
	return &SchedulerMetrics{}
}

func (m *SchedulerMetrics) Started(b btx.Behavior) {
	behaviorsStarted.WithLabelValues(label(b)).Inc()
}

func (m *SchedulerMetrics) Terminated(b btx.Behavior, status btx.Status) {
	behaviorsTerminated.WithLabelValues(label(b), status.String()).Inc()
}

func (m *SchedulerMetrics) RoundComplete(_ uint64, steps int) {
	roundsTotal.Inc()
	roundSteps.Observe(float64(steps))
}

func label(b btx.Behavior) string {
	if n, ok := b.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", b)
}
