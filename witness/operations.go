package witness

import (
	"github.com/verichain/verichain/model/product"
)

// Operation is a registry operation whose witness can be evaluated against a
// ledger snapshot.
type Operation interface {
	// Circuit is the circuit the operation is submitted to.
	Circuit() product.CircuitID
	// Product is the product the operation targets.
	Product() product.ID
	// Validate runs the operation's witness against the snapshot.
	Validate(state *product.LedgerState) (product.Arguments, error)
}

var (
	_ Operation = RegisterProduct{}
	_ Operation = MintNFT{}
	_ Operation = VerifyAuthenticity{}
	_ Operation = DiscloseESG{}
)

// RegisterProduct anchors a commitment for a new product.
type RegisterProduct struct {
	ProductID  product.ID
	OwnerID    uint64
	Commitment []byte
}

func (op RegisterProduct) Circuit() product.CircuitID { return product.CircuitRegisterProduct }
func (op RegisterProduct) Product() product.ID        { return op.ProductID }

func (op RegisterProduct) Validate(state *product.LedgerState) (product.Arguments, error) {
	return ValidateRegister(state, op)
}

// MintNFT mints the NFT of a registered product.
type MintNFT struct {
	ProductID product.ID
}

func (op MintNFT) Circuit() product.CircuitID { return product.CircuitMintNFT }
func (op MintNFT) Product() product.ID        { return op.ProductID }

func (op MintNFT) Validate(state *product.LedgerState) (product.Arguments, error) {
	return ValidateMint(state, op)
}

// VerifyAuthenticity submits a 32-byte authenticity proof for a minted product.
type VerifyAuthenticity struct {
	ProductID product.ID
	Proof     []byte
}

func (op VerifyAuthenticity) Circuit() product.CircuitID { return product.CircuitVerifyAuthenticity }
func (op VerifyAuthenticity) Product() product.ID        { return op.ProductID }

func (op VerifyAuthenticity) Validate(state *product.LedgerState) (product.Arguments, error) {
	return ValidateVerify(state, op)
}

// DiscloseESG submits a 64-byte ESG proof for a registered product.
type DiscloseESG struct {
	ProductID product.ID
	Proof     []byte
}

func (op DiscloseESG) Circuit() product.CircuitID { return product.CircuitDiscloseESG }
func (op DiscloseESG) Product() product.ID        { return op.ProductID }

func (op DiscloseESG) Validate(state *product.LedgerState) (product.Arguments, error) {
	return ValidateDiscloseESG(state, op)
}
