package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/verichain/verichain/emulator/types"
)

func InsertTransaction(tx *types.Transaction) func(*badger.Txn) error {
	return insert(makePrefix(codeTransaction, tx.Hash), tx)
}

func RetrieveTransaction(hash string, tx *types.Transaction) func(*badger.Txn) error {
	return retrieve(makePrefix(codeTransaction, hash), tx)
}
