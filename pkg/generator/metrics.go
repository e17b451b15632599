package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "seqgen"

var strategyLabels = []string{"combinator", "compositor", "permutator"}

// Metrics counts what generators yield, labelled by the strategies of the generator.
type Metrics struct {
	// SequencesTotal counts generated sequences.
	SequencesTotal *prometheus.CounterVec
	// ElementsTotal counts the elements of the generated sequences.
	ElementsTotal *prometheus.CounterVec
}

// NewMetrics registers the generator metrics on reg.
// It panics if they are already registered there.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SequencesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sequences_total",
			Help:      "Total number of generated sequences.",
		}, strategyLabels),
		ElementsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "elements_total",
			Help:      "Total number of elements in the generated sequences.",
		}, strategyLabels),
	}
}

type counters struct {
	sequences prometheus.Counter
	elements  prometheus.Counter
}

func (m *Metrics) counters(s Strategies) counters {
	lvs := []string{s.Combinator.String(), s.Compositor.String(), s.Permutator.String()}
	return counters{
		sequences: m.SequencesTotal.WithLabelValues(lvs...),
		elements:  m.ElementsTotal.WithLabelValues(lvs...),
	}
}

func (c *counters) record(seq int) {
	if c == nil {
		return
	}
	c.sequences.Inc()
	c.elements.Add(float64(seq))
}
