package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/verichain/verichain/emulator"
	"github.com/verichain/verichain/engine/access/rest/models"
	"github.com/verichain/verichain/model/product"
)

const maxCallRequestSize = 1 << 16

func addressVar(r *http.Request) (product.Address, error) {
	address := mux.Vars(r)["address"]
	if address == "" {
		return "", fmt.Errorf("missing contract address")
	}
	return product.Address(address), nil
}

// DeployContract creates a new registry contract.
func DeployContract(r *http.Request, backend Backend) (interface{}, error) {
	address, err := backend.Deploy(r.Context())
	if err != nil {
		return nil, err
	}
	return models.Deployment{Address: address.String()}, nil
}

// GetContractState returns the public state of a contract.
func GetContractState(r *http.Request, backend Backend) (interface{}, error) {
	address, err := addressVar(r)
	if err != nil {
		return nil, models.NewBadRequestError(err)
	}

	state, err := backend.ContractState(r.Context(), address)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, models.NewNotFoundError(
			fmt.Sprintf("contract %s not found", address),
			fmt.Errorf("no contract at %s", address),
		)
	}

	var response models.ContractState
	response.Build(address, state)
	return response, nil
}

// SubmitCall applies a circuit call to a contract and returns the hash of the
// resulting transaction once it is applied.
func SubmitCall(r *http.Request, backend Backend) (interface{}, error) {
	address, err := addressVar(r)
	if err != nil {
		return nil, models.NewBadRequestError(err)
	}

	var req models.CallRequest
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxCallRequestSize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return nil, models.NewBadRequestError(fmt.Errorf("invalid call request: %w", err))
	}

	call, err := req.Call(address)
	if err != nil {
		return nil, models.NewBadRequestError(err)
	}

	txHash, err := backend.Submit(r.Context(), call)
	if emulator.IsCircuitAssertionError(err) {
		return nil, models.NewConflictError(err)
	}
	if err != nil {
		return nil, err
	}
	return models.TransactionResult{TxHash: txHash}, nil
}
