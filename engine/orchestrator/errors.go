package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/witness"
)

// Kind classifies operation errors so callers can branch without matching on
// error messages.
type Kind int

const (
	// KindUnknown is any error not produced by the registry core.
	KindUnknown Kind = iota
	// KindPrecondition is a witness rejection. Never retry.
	KindPrecondition
	// KindTransient is an infrastructure fault with no external effect. Safe
	// to retry with backoff.
	KindTransient
	// KindAmbiguous means the call may have reached the ledger. Reconcile by
	// re-querying state, never by submitting the call again.
	KindAmbiguous
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindTransient:
		return "transient"
	case KindAmbiguous:
		return "ambiguous"
	default:
		return "unknown"
	}
}

// KindOf returns the kind of err.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case IsAmbiguousOutcomeError(err):
		return KindAmbiguous
	case witness.IsPreconditionError(err):
		return KindPrecondition
	case IsContractNotFoundError(err), IsLedgerUnavailableError(err), IsSubmissionFailedError(err):
		return KindTransient
	default:
		return KindUnknown
	}
}

// ContractNotFoundError is returned when a contract address does not resolve
// to a deployed registry contract.
type ContractNotFoundError struct {
	Address product.Address
}

func (e ContractNotFoundError) Error() string {
	return fmt.Sprintf("contract %s not found", e.Address)
}

func IsContractNotFoundError(err error) bool {
	var target ContractNotFoundError
	return errors.As(err, &target)
}

// LedgerUnavailableError is returned when the ledger state could not be
// queried. No call has been submitted.
type LedgerUnavailableError struct {
	Address product.Address
	err     error
}

func NewLedgerUnavailableError(address product.Address, err error) *LedgerUnavailableError {
	return &LedgerUnavailableError{Address: address, err: err}
}

func (e *LedgerUnavailableError) Error() string {
	return fmt.Sprintf("could not query state of contract %s: %v", e.Address, e.err)
}

func (e *LedgerUnavailableError) Unwrap() error {
	return e.err
}

func IsLedgerUnavailableError(err error) bool {
	var target *LedgerUnavailableError
	return errors.As(err, &target)
}

// SubmissionFailedError is returned when the submitter failed without the call
// being applied, including rejections by the ledger itself.
type SubmissionFailedError struct {
	Circuit   product.CircuitID
	ProductID product.ID
	err       error
}

func NewSubmissionFailedError(call *product.Call, err error) *SubmissionFailedError {
	return &SubmissionFailedError{Circuit: call.Circuit, ProductID: call.Args.ProductID, err: err}
}

func (e *SubmissionFailedError) Error() string {
	return fmt.Sprintf("could not submit %s for product %s: %v", e.Circuit, e.ProductID, e.err)
}

func (e *SubmissionFailedError) Unwrap() error {
	return e.err
}

func IsSubmissionFailedError(err error) bool {
	var target *SubmissionFailedError
	return errors.As(err, &target)
}

// AmbiguousOutcomeError is returned when a submission was interrupted after the
// call may have reached the ledger.
type AmbiguousOutcomeError struct {
	Circuit   product.CircuitID
	ProductID product.ID
	err       error
}

func NewAmbiguousOutcomeError(call *product.Call, err error) *AmbiguousOutcomeError {
	return &AmbiguousOutcomeError{Circuit: call.Circuit, ProductID: call.Args.ProductID, err: err}
}

func (e *AmbiguousOutcomeError) Error() string {
	return fmt.Sprintf("outcome of %s for product %s is unknown, reconcile against ledger state: %v", e.Circuit, e.ProductID, e.err)
}

func (e *AmbiguousOutcomeError) Unwrap() error {
	return e.err
}

func IsAmbiguousOutcomeError(err error) bool {
	var target *AmbiguousOutcomeError
	return errors.As(err, &target)
}

// RetriesExhaustedError is returned when every attempt of an operation failed
// with a transient fault. It unwraps to the error of the last attempt.
type RetriesExhaustedError struct {
	attempts *multierror.Error
	last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", len(e.attempts.Errors), e.attempts)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.last
}

// Attempts returns the errors of all attempts in order.
func (e *RetriesExhaustedError) Attempts() []error {
	return e.attempts.WrappedErrors()
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
