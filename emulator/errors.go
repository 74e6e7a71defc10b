package emulator

import (
	"errors"
	"fmt"

	"github.com/verichain/verichain/model/product"
)

// CircuitAssertionError is returned when a circuit call violates an assertion
// of the registry contract. The call has not been applied.
type CircuitAssertionError struct {
	Circuit   product.CircuitID
	ProductID product.ID
	Message   string
}

func (e *CircuitAssertionError) Error() string {
	return fmt.Sprintf("circuit %s rejected call for product %s: %s", e.Circuit, e.ProductID, e.Message)
}

func IsCircuitAssertionError(err error) bool {
	var target *CircuitAssertionError
	return errors.As(err, &target)
}

// ContractNotFoundError is returned when no contract is deployed at an address.
type ContractNotFoundError struct {
	Address product.Address
}

func (e *ContractNotFoundError) Error() string {
	return fmt.Sprintf("no contract deployed at %s", e.Address)
}

func IsContractNotFoundError(err error) bool {
	var target *ContractNotFoundError
	return errors.As(err, &target)
}

// TransactionNotFoundError is returned when no applied transaction has the
// requested hash.
type TransactionNotFoundError struct {
	TxHash string
}

func (e *TransactionNotFoundError) Error() string {
	return fmt.Sprintf("transaction %s not found", e.TxHash)
}

func IsTransactionNotFoundError(err error) bool {
	var target *TransactionNotFoundError
	return errors.As(err, &target)
}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	inner error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure: %v", e.inner)
}

func (e *StorageError) Unwrap() error {
	return e.inner
}
