package orchestrator

import (
	"context"

	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/witness"
)

// Outcome is the result of reconciling an operation with ledger state.
type Outcome int

const (
	// OutcomeUndeterminable means ledger state carries no marker of the
	// operation.
	OutcomeUndeterminable Outcome = iota
	// OutcomeApplied means ledger state shows the operation's effect.
	OutcomeApplied
	// OutcomeNotApplied means ledger state shows no effect of the operation.
	OutcomeNotApplied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNotApplied:
		return "not_applied"
	default:
		return "undeterminable"
	}
}

// Reconcile reads the current state of the contract at address and reports
// whether the effect of op is visible. It is used after an AmbiguousOutcomeError
// instead of submitting op again.
//
// An applied outcome only shows that some call produced the effect, not that
// it was this caller's call. Verify and disclose leave no marker in public
// state and always reconcile to OutcomeUndeterminable.
func (o *Orchestrator) Reconcile(ctx context.Context, address product.Address, op witness.Operation) (Outcome, error) {
	state, err := o.querier.ContractState(ctx, address)
	if err != nil {
		return OutcomeUndeterminable, NewLedgerUnavailableError(address, err)
	}
	if state == nil {
		return OutcomeUndeterminable, ContractNotFoundError{Address: address}
	}

	outcome := reconcile(state, op)
	o.log.Info().
		Str("circuit", op.Circuit().String()).
		Str("product_id", op.Product().String()).
		Str("contract", address.String()).
		Str("outcome", outcome.String()).
		Msg("reconciled operation with ledger state")
	return outcome, nil
}

func reconcile(state *product.LedgerState, op witness.Operation) Outcome {
	var applied bool
	switch op.Circuit() {
	case product.CircuitRegisterProduct:
		applied = state.IsRegistered(op.Product())
	case product.CircuitMintNFT:
		applied = state.IsMinted(op.Product())
	default:
		return OutcomeUndeterminable
	}
	if applied {
		return OutcomeApplied
	}
	return OutcomeNotApplied
}
