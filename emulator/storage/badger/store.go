// Package badger implements the emulator store on top of a badger key-value
// database.
package badger

import (
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/verichain/verichain/emulator/storage"
	"github.com/verichain/verichain/emulator/storage/badger/operation"
	"github.com/verichain/verichain/emulator/types"
	"github.com/verichain/verichain/model/product"
)

// Store persists contracts and transactions in badger.
type Store struct {
	db    *badger.DB
	owned bool
}

var _ storage.Store = (*Store)(nil)

// New returns a store backed by db. The caller keeps ownership of db.
func New(db *badger.DB) *Store {
	return &Store{db: db}
}

// Open opens, or creates, a badger database in dir.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("could not open badger db in %s: %w", dir, err)
	}
	return &Store{db: db, owned: true}, nil
}

// NewInMemory returns a store backed by an in-memory badger database.
func NewInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("could not open in-memory badger db: %w", err)
	}
	return &Store{db: db, owned: true}, nil
}

func (s *Store) ContractByAddress(address product.Address) (*types.Contract, error) {
	var contract types.Contract
	err := s.db.View(operation.RetrieveContract(address, &contract))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve contract %s: %w", address, err)
	}
	return &contract, nil
}

func (s *Store) InsertContract(contract *types.Contract) error {
	err := s.db.Update(operation.InsertContract(contract))
	if err != nil {
		return fmt.Errorf("could not insert contract %s: %w", contract.Address, err)
	}
	return nil
}

func (s *Store) CommitTransaction(contract *types.Contract, tx *types.Transaction) error {
	err := s.db.Update(func(btx *badger.Txn) error {
		err := operation.UpdateContract(contract)(btx)
		if err != nil {
			return fmt.Errorf("could not update contract: %w", err)
		}
		err = operation.InsertTransaction(tx)(btx)
		if err != nil {
			return fmt.Errorf("could not insert transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not commit transaction %s: %w", tx.Hash, err)
	}
	return nil
}

func (s *Store) TransactionByHash(hash string) (*types.Transaction, error) {
	var tx types.Transaction
	err := s.db.View(operation.RetrieveTransaction(hash, &tx))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve transaction %s: %w", hash, err)
	}
	return &tx, nil
}

// Close closes the underlying database if the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
