package types

import (
	"time"

	"github.com/verichain/verichain/model/product"
)

// Transaction is a circuit call that has been applied to a contract.
type Transaction struct {
	Hash      string       `msgpack:"hash"`
	Call      product.Call `msgpack:"call"`
	Nonce     uint64       `msgpack:"nonce"`
	AppliedAt time.Time    `msgpack:"applied_at"`
}

// Event is emitted for every applied transaction.
type Event struct {
	Contract  product.Address
	Circuit   product.CircuitID
	ProductID product.ID
	TxHash    string
	Nonce     uint64
}

// EventFromTransaction returns the event emitted for tx.
func EventFromTransaction(tx *Transaction) Event {
	return Event{
		Contract:  tx.Call.Contract,
		Circuit:   tx.Call.Circuit,
		ProductID: tx.Call.Args.ProductID,
		TxHash:    tx.Hash,
		Nonce:     tx.Nonce,
	}
}
