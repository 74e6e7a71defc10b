package module

import (
	"context"
	"errors"

	"github.com/verichain/verichain/model/product"
)

// ErrOutcomeUnknown is wrapped by a Submitter when a call may have reached the
// ledger but no confirmation was received. Callers must reconcile by
// re-querying ledger state instead of submitting the call again.
var ErrOutcomeUnknown = errors.New("transaction outcome unknown")

// LedgerQuerier reads the public state of a registry contract.
type LedgerQuerier interface {
	// ContractState returns a fresh snapshot of the contract at address.
	// It returns (nil, nil) if the address does not resolve to a contract.
	// Any returned error is a failure to reach or read the ledger.
	ContractState(ctx context.Context, address product.Address) (*product.LedgerState, error)
}

// Submitter proves and submits a circuit call, blocking until the ledger has
// confirmed it.
type Submitter interface {
	// Submit returns the hash of the confirmed transaction. Errors wrapping
	// ErrOutcomeUnknown indicate the call may have been applied.
	Submit(ctx context.Context, call *product.Call) (string, error)
}

// Deployer creates new registry contract instances.
type Deployer interface {
	Deploy(ctx context.Context) (product.Address, error)
}

// Ledger bundles the read and write capabilities of a ledger backend.
type Ledger interface {
	LedgerQuerier
	Submitter
	Deployer
}

// Committer computes the commitment of product metadata.
type Committer interface {
	Commit(data []byte) product.Commitment
}
