package module

import (
	"time"

	"github.com/verichain/verichain/model/product"
)

// RegistryMetrics tracks the outcome of registry operations driven by the
// orchestrator.
type RegistryMetrics interface {
	// OperationSubmitted is called when a call has been confirmed by the ledger.
	OperationSubmitted(circuit product.CircuitID, duration time.Duration)

	// OperationRejected is called when a witness rejects an operation.
	OperationRejected(circuit product.CircuitID, reason string)

	// OperationFailed is called when an operation fails for a non-precondition
	// reason. kind is one of the orchestrator error kinds.
	OperationFailed(circuit product.CircuitID, kind string)

	// SubmissionRetried is called each time an attempt is retried.
	SubmissionRetried(circuit product.CircuitID)
}

// LedgerMetrics tracks circuit calls applied by a ledger backend.
type LedgerMetrics interface {
	// CallApplied is called when a circuit call was applied to contract state.
	CallApplied(circuit product.CircuitID)

	// CallRejected is called when a circuit assertion rejected a call.
	CallRejected(circuit product.CircuitID)

	// ContractDeployed is called when a new contract instance is created.
	ContractDeployed()
}

// RestMetrics tracks requests served by the REST access API.
type RestMetrics interface {
	ObserveHTTPRequestDuration(route string, method string, code int, duration time.Duration)
}
