package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/verichain/verichain/emulator/types"
	"github.com/verichain/verichain/model/product"
)

func InsertContract(contract *types.Contract) func(*badger.Txn) error {
	return insert(makePrefix(codeContract, string(contract.Address)), contract)
}

func UpdateContract(contract *types.Contract) func(*badger.Txn) error {
	return update(makePrefix(codeContract, string(contract.Address)), contract)
}

func RetrieveContract(address product.Address, contract *types.Contract) func(*badger.Txn) error {
	return retrieve(makePrefix(codeContract, string(address)), contract)
}
