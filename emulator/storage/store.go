// Package storage defines the interface and implementations for persisting
// emulated ledger state.
package storage

import (
	"errors"

	"github.com/verichain/verichain/emulator/types"
	"github.com/verichain/verichain/model/product"
)

var (
	// ErrNotFound is returned when a record does not exist. Implementations
	// translate backend specific not found errors into ErrNotFound.
	ErrNotFound = errors.New("key not found")

	ErrAlreadyExists = errors.New("key already exists")
)

// Store defines the storage layer for emulated ledger state.
//
// This includes deployed contracts and the transactions applied to them.
// Rejected calls are never persisted.
//
// Implementations must distinguish between not found errors and errors with
// the underlying storage by returning ErrNotFound if a record cannot be found.
//
// Implementations must be safe for use by multiple goroutines.
type Store interface {
	ContractByAddress(address product.Address) (*types.Contract, error)
	InsertContract(contract *types.Contract) error

	// CommitTransaction atomically replaces the state of the contract the
	// transaction was applied to and indexes the transaction.
	CommitTransaction(contract *types.Contract, tx *types.Transaction) error
	TransactionByHash(hash string) (*types.Transaction, error)

	Close() error
}
