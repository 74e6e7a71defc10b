package rest

import (
	"github.com/verichain/verichain/emulator"
	"github.com/verichain/verichain/emulator/types"
	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
)

// Backend is the ledger served by the REST API.
type Backend interface {
	module.Ledger

	// Transaction returns an applied transaction by hash.
	Transaction(hash string) (*types.Transaction, error)

	// Subscribe streams the events of the contract at address until the
	// returned function is called.
	Subscribe(address product.Address) (<-chan types.Event, func(), error)
}

var _ Backend = (*emulator.EmulatedLedger)(nil)
