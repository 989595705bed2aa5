package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/metachem/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "metachem"

// Outcome labels of runs_total.
const (
	OutcomeTerminated = "terminated"
	OutcomeExhausted  = "exhausted"
	OutcomeFailed     = "failed"
)

// Metrics holds the engine collectors.
type Metrics struct {
	nodeVisits  *prometheus.CounterVec
	skipped     *prometheus.CounterVec
	decisions   *prometheus.CounterVec
	runs        *prometheus.CounterVec
	runSteps    prometheus.Histogram
	runDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		nodeVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "node_visits_total",
				Help:      "Total number of control node visits.",
			},
			[]string{"node", "role"},
		),
		skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "skipped_total",
				Help:      "Transitions skipped by the stochastic gate.",
			},
			[]string{"node"},
		),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "decisions_total",
				Help:      "Decision outcomes by option index.",
			},
			[]string{"node", "option"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "engine",
				Name:      "runs_total",
				Help:      "Finished runs by outcome.",
			},
			[]string{"outcome"},
		),
		runSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "run_steps",
			Help:      "Steps taken per run.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "run_duration_seconds",
			Help:      "Run duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	for _, c := range []prometheus.Collector{m.nodeVisits, m.skipped, m.decisions, m.runs, m.runSteps, m.runDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnNodeLeave: func(_ context.Context, e *domain.NodeEvent) {
			m.nodeVisits.WithLabelValues(e.NodeID, e.Role.String()).Inc()
			if e.Skipped {
				m.skipped.WithLabelValues(e.NodeID).Inc()
			}
			if e.Role == domain.RoleDecision {
				m.decisions.WithLabelValues(e.NodeID, strconv.Itoa(e.Choice)).Inc()
			}
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			m.runs.WithLabelValues(outcome(e)).Inc()
			if e.Result != nil {
				m.runSteps.Observe(float64(e.Result.Steps))
				m.runDuration.Observe(e.Result.Duration.Seconds())
			}
		},
	}
}

func outcome(e *domain.RunEvent) string {
	switch {
	case e.Err != nil:
		return OutcomeFailed
	case e.Result != nil && e.Result.Terminated:
		return OutcomeTerminated
	default:
		return OutcomeExhausted
	}
}
