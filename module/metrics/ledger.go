package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
)

// LedgerCollector collects metrics of the emulated ledger.
type LedgerCollector struct {
	applied   *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	contracts prometheus.Counter
}

var _ module.LedgerMetrics = (*LedgerCollector)(nil)

func NewLedgerCollector(registerer prometheus.Registerer) *LedgerCollector {
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceEmulator,
		Subsystem: subsystemLedger,
		Name:      "calls_applied_total",
		Help:      "number of circuit calls applied to contract state",
	}, []string{LabelCircuit})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespaceEmulator,
		Subsystem: subsystemLedger,
		Name:      "calls_rejected_total",
		Help:      "number of circuit calls rejected by a circuit assertion",
	}, []string{LabelCircuit})
	contracts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespaceEmulator,
		Subsystem: subsystemLedger,
		Name:      "contracts_deployed_total",
		Help:      "number of deployed registry contracts",
	})
	registerer.MustRegister(applied, rejected, contracts)

	return &LedgerCollector{
		applied:   applied,
		rejected:  rejected,
		contracts: contracts,
	}
}

func (c *LedgerCollector) CallApplied(circuit product.CircuitID) {
	c.applied.WithLabelValues(circuit.String()).Inc()
}

func (c *LedgerCollector) CallRejected(circuit product.CircuitID) {
	c.rejected.WithLabelValues(circuit.String()).Inc()
}

func (c *LedgerCollector) ContractDeployed() {
	c.contracts.Inc()
}
