package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
)

// RegistryCollector collects metrics of the transaction orchestrator.
type RegistryCollector struct {
	submitted         *prometheus.CounterVec
	submitDuration    *prometheus.HistogramVec
	rejected          *prometheus.CounterVec
	failed            *prometheus.CounterVec
	submissionRetried *prometheus.CounterVec
}

var _ module.RegistryMetrics = (*RegistryCollector)(nil)

func NewRegistryCollector(registerer prometheus.Registerer) *RegistryCollector {
	submitted := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceRegistry,
		Subsystem: subsystemOrchestrator,
		Name:      "operations_submitted_total",
		Help:      "number of circuit calls confirmed by the ledger",
	}, []string{LabelCircuit})
	submitDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespaceRegistry,
		Subsystem: subsystemOrchestrator,
		Name:      "operation_duration_seconds",
		Help:      "time from the first snapshot fetch until the call was confirmed",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{LabelCircuit})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceRegistry,
		Subsystem: subsystemOrchestrator,
		Name:      "operations_rejected_total",
		Help:      "number of operations rejected by a witness precondition",
	}, []string{LabelCircuit, LabelReason})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceRegistry,
		Subsystem: subsystemOrchestrator,
		Name:      "operations_failed_total",
		Help:      "number of operations that failed for infrastructure reasons",
	}, []string{LabelCircuit, LabelKind})
	retried := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceRegistry,
		Subsystem: subsystemOrchestrator,
		Name:      "submission_retries_total",
		Help:      "number of retried operation attempts",
	}, []string{LabelCircuit})
	registerer.MustRegister(submitted, submitDuration, rejected, failed, retried)

	return &RegistryCollector{
		submitted:         submitted,
		submitDuration:    submitDuration,
		rejected:          rejected,
		failed:            failed,
		submissionRetried: retried,
	}
}

func (c *RegistryCollector) OperationSubmitted(circuit product.CircuitID, duration time.Duration) {
	c.submitted.WithLabelValues(circuit.String()).Inc()
	c.submitDuration.WithLabelValues(circuit.String()).Observe(duration.Seconds())
}

func (c *RegistryCollector) OperationRejected(circuit product.CircuitID, reason string) {
	c.rejected.WithLabelValues(circuit.String(), reason).Inc()
}

func (c *RegistryCollector) OperationFailed(circuit product.CircuitID, kind string) {
	c.failed.WithLabelValues(circuit.String(), kind).Inc()
}

func (c *RegistryCollector) SubmissionRetried(circuit product.CircuitID) {
	c.submissionRetried.WithLabelValues(circuit.String()).Inc()
}
