package observability

import (
	"context"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "markov"

// Metrics collects chain and walk counters.
//
// Metrics exposed (all namespaced with "markov_"):
//
//   - nodes_inserted_total (counter): distinct states added to a chain.
//   - transitions_recorded_total (counter): transition observations, including increments.
//   - walks_total (counter, label "label"): walks emitted successfully.
//   - walk_errors_total (counter, label "label"): walks that failed to start or emit.
//   - walk_length (histogram, label "label"): states per emitted walk.
type Metrics struct {
	nodes       prometheus.Counter
	transitions prometheus.Counter
	walks       *prometheus.CounterVec
	walkErrors  *prometheus.CounterVec
	walkLength  *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics with registry.
// A nil registry means prometheus.DefaultRegisterer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		nodes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_inserted_total",
			Help:      "Distinct states inserted into the chain",
		}),
		transitions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_recorded_total",
			Help:      "Transition observations recorded, including repeats",
		}),
		walks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "walks_total",
			Help:      "Walks generated and emitted",
		}, []string{"label"}),
		walkErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "walk_errors_total",
			Help:      "Walks that could not be generated or emitted",
		}, []string{"label"}),
		walkLength: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "walk_length",
			Help:      "Number of states per emitted walk",
			Buckets:   []float64{1, 2, 5, 10, 20, 40, 60, 100},
		}, []string{"label"}),
	}
}

// ChainHooks returns construction hooks feeding m.
func ChainHooks[T any](m *Metrics) domain.ChainHooks[T] {
	return domain.ChainHooks[T]{
		OnInsert: func(*domain.NodeEvent[T]) {
			m.nodes.Inc()
		},
		OnTransition: func(*domain.TransitionEvent[T]) {
			m.transitions.Inc()
		},
	}
}

// WalkHooks returns generation hooks feeding m.
func (m *Metrics) WalkHooks() domain.WalkHooks {
	return domain.WalkHooks{
		OnWalkEnd: func(_ context.Context, e *domain.WalkEvent) {
			if e.Err != nil {
				m.walkErrors.WithLabelValues(e.Label).Inc()
				return
			}
			m.walks.WithLabelValues(e.Label).Inc()
			m.walkLength.WithLabelValues(e.Label).Observe(float64(e.Length))
		},
	}
}
