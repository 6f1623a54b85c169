package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

const namespace = "logicgrid"

var (
	// Registry holds every collector of this module
	Registry = prometheus.NewRegistry()

	Conditions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "conditions_total",
		Help:      "Number of formula fragments conjoined into an accumulator.",
	})

	Constraints = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "constraints_total",
		Help:      "Number of constraints generated, by kind.",
	}, []string{"kind"})

	CompileDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "compile_duration_seconds",
		Help:      "Time spent compiling a puzzle into a formula.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})

	SolveDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "solve_duration_seconds",
		Help:      "Time spent obtaining a satisfying assignment, by backend.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"backend"})
)

func init() {
	Registry.MustRegister(Conditions, Constraints, CompileDuration, SolveDuration)
}

// WriteText writes every registered metric in the Prometheus text exposition format
func WriteText(writer io.Writer) error {
	families, err := Registry.Gather()
	if err != nil {
		return fmt.Errorf("cannot gather metrics: %w", err)
	}
	for _, family := range families {
		if err := writeFamily(writer, family); err != nil {
			return err
		}
	}
	return nil
}

func writeFamily(writer io.Writer, family *dto.MetricFamily) error {
	if _, err := expfmt.MetricFamilyToText(writer, family); err != nil {
		return fmt.Errorf("cannot write metric family %v: %w", family.GetName(), err)
	}
	return nil
}
