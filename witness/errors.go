package witness

import (
	"errors"
	"fmt"

	"github.com/verichain/verichain/model/product"
)

// PreconditionError is implemented by every witness rejection. A precondition
// error is deterministic for a given snapshot and must not be retried.
type PreconditionError interface {
	error
	// Reason is a short machine readable name of the violated precondition.
	Reason() string
	precondition()
}

// IsPreconditionError returns whether err is, or wraps, a witness rejection.
func IsPreconditionError(err error) bool {
	var target PreconditionError
	return errors.As(err, &target)
}

// AlreadyRegisteredError indicates that the product is already a member of
// product_status.
type AlreadyRegisteredError struct {
	ProductID product.ID
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("product %s already registered", e.ProductID)
}

func (e AlreadyRegisteredError) Reason() string { return "already_registered" }
func (e AlreadyRegisteredError) precondition()  {}

func IsAlreadyRegisteredError(err error) bool {
	var target AlreadyRegisteredError
	return errors.As(err, &target)
}

// NotRegisteredError indicates that the product is not a member of
// product_status.
type NotRegisteredError struct {
	ProductID product.ID
}

func (e NotRegisteredError) Error() string {
	return fmt.Sprintf("product %s is not registered", e.ProductID)
}

func (e NotRegisteredError) Reason() string { return "not_registered" }
func (e NotRegisteredError) precondition()  {}

func IsNotRegisteredError(err error) bool {
	var target NotRegisteredError
	return errors.As(err, &target)
}

// AlreadyMintedError indicates that an NFT has already been minted for the
// product.
type AlreadyMintedError struct {
	ProductID product.ID
}

func (e AlreadyMintedError) Error() string {
	return fmt.Sprintf("NFT already minted for product %s", e.ProductID)
}

func (e AlreadyMintedError) Reason() string { return "already_minted" }
func (e AlreadyMintedError) precondition()  {}

func IsAlreadyMintedError(err error) bool {
	var target AlreadyMintedError
	return errors.As(err, &target)
}

// NotMintedError indicates that the product must be minted before the
// requested operation.
type NotMintedError struct {
	ProductID product.ID
}

func (e NotMintedError) Error() string {
	return fmt.Sprintf("product %s must be minted before verification", e.ProductID)
}

func (e NotMintedError) Reason() string { return "not_minted" }
func (e NotMintedError) precondition()  {}

func IsNotMintedError(err error) bool {
	var target NotMintedError
	return errors.As(err, &target)
}

// InvalidCommitmentLengthError indicates a commitment that is not exactly
// product.CommitmentLength bytes long.
type InvalidCommitmentLengthError struct {
	Actual   int
	Expected int
}

func (e InvalidCommitmentLengthError) Error() string {
	return fmt.Sprintf("invalid commitment length (%d), expected %d bytes", e.Actual, e.Expected)
}

func (e InvalidCommitmentLengthError) Reason() string { return "invalid_commitment_length" }
func (e InvalidCommitmentLengthError) precondition()  {}

func IsInvalidCommitmentLengthError(err error) bool {
	var target InvalidCommitmentLengthError
	return errors.As(err, &target)
}

// InvalidProofLengthError indicates a proof whose length does not match the
// circuit it is submitted to.
type InvalidProofLengthError struct {
	Circuit  product.CircuitID
	Actual   int
	Expected int
}

func (e InvalidProofLengthError) Error() string {
	return fmt.Sprintf("invalid %s proof length (%d), expected %d bytes", e.Circuit, e.Actual, e.Expected)
}

func (e InvalidProofLengthError) Reason() string { return "invalid_proof_length" }
func (e InvalidProofLengthError) precondition()  {}

func IsInvalidProofLengthError(err error) bool {
	var target InvalidProofLengthError
	return errors.As(err, &target)
}
