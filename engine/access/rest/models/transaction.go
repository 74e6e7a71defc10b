package models

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/verichain/verichain/emulator/types"
	"github.com/verichain/verichain/model/product"
)

// CallRequest is the body of a circuit call submission. Byte fields are hex
// encoded.
type CallRequest struct {
	Circuit    string `json:"circuit"`
	ProductID  uint64 `json:"product_id,string"`
	OwnerID    uint64 `json:"owner_id,string,omitempty"`
	Commitment string `json:"commitment,omitempty"`
	Proof      string `json:"proof,omitempty"`
}

func (r *CallRequest) Build(call *product.Call) {
	r.Circuit = call.Circuit.String()
	r.ProductID = uint64(call.Args.ProductID)
	r.OwnerID = call.Args.OwnerID
	if call.Args.Commitment != nil {
		r.Commitment = hex.EncodeToString(call.Args.Commitment)
	}
	if call.Args.Proof != nil {
		r.Proof = hex.EncodeToString(call.Args.Proof)
	}
}

// Call converts the request into a call on the contract at address.
func (r *CallRequest) Call(address product.Address) (*product.Call, error) {
	circuit := product.CircuitID(r.Circuit)
	if !circuit.Valid() {
		return nil, fmt.Errorf("unknown circuit %q", r.Circuit)
	}
	args := product.Arguments{
		ProductID: product.ID(r.ProductID),
		OwnerID:   r.OwnerID,
	}
	var err error
	if r.Commitment != "" {
		args.Commitment, err = product.DecodeHex(r.Commitment)
		if err != nil {
			return nil, fmt.Errorf("invalid commitment: %w", err)
		}
	}
	if r.Proof != "" {
		args.Proof, err = product.DecodeHex(r.Proof)
		if err != nil {
			return nil, fmt.Errorf("invalid proof: %w", err)
		}
	}
	return &product.Call{Circuit: circuit, Contract: address, Args: args}, nil
}

// TransactionResult is the response to an applied call.
type TransactionResult struct {
	TxHash string `json:"tx_hash"`
}

// Transaction describes an applied transaction.
type Transaction struct {
	Hash      string      `json:"hash"`
	Contract  string      `json:"contract"`
	Call      CallRequest `json:"call"`
	Nonce     uint64      `json:"nonce,string"`
	AppliedAt time.Time   `json:"applied_at"`
}

func (t *Transaction) Build(tx *types.Transaction) {
	t.Hash = tx.Hash
	t.Contract = tx.Call.Contract.String()
	t.Call.Build(&tx.Call)
	t.Nonce = tx.Nonce
	t.AppliedAt = tx.AppliedAt
}

// Event is pushed to event stream subscribers.
type Event struct {
	Contract  string `json:"contract"`
	Circuit   string `json:"circuit"`
	ProductID uint64 `json:"product_id,string"`
	TxHash    string `json:"tx_hash"`
	Nonce     uint64 `json:"nonce,string"`
}

func (e *Event) Build(event types.Event) {
	e.Contract = event.Contract.String()
	e.Circuit = event.Circuit.String()
	e.ProductID = uint64(event.ProductID)
	e.TxHash = event.TxHash
	e.Nonce = event.Nonce
}
