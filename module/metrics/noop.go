package metrics

import (
	"time"

	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
)

type NoopCollector struct{}

var (
	_ module.RegistryMetrics = (*NoopCollector)(nil)
	_ module.LedgerMetrics   = (*NoopCollector)(nil)
	_ module.RestMetrics     = (*NoopCollector)(nil)
)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) OperationSubmitted(product.CircuitID, time.Duration)           {}
func (nc *NoopCollector) OperationRejected(product.CircuitID, string)                   {}
func (nc *NoopCollector) OperationFailed(product.CircuitID, string)                     {}
func (nc *NoopCollector) SubmissionRetried(product.CircuitID)                           {}
func (nc *NoopCollector) CallApplied(product.CircuitID)                                 {}
func (nc *NoopCollector) CallRejected(product.CircuitID)                                {}
func (nc *NoopCollector) ContractDeployed()                                             {}
func (nc *NoopCollector) ObserveHTTPRequestDuration(string, string, int, time.Duration) {}
