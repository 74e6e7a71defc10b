package product

// CircuitID names an on-chain operation of the registry contract.
type CircuitID string

const (
	CircuitRegisterProduct    CircuitID = "register_product"
	CircuitMintNFT            CircuitID = "mint_nft"
	CircuitVerifyAuthenticity CircuitID = "verify_authenticity"
	CircuitDiscloseESG        CircuitID = "disclose_esg"
)

// Circuits lists every circuit of the registry contract in lifecycle order.
var Circuits = []CircuitID{
	CircuitRegisterProduct,
	CircuitMintNFT,
	CircuitVerifyAuthenticity,
	CircuitDiscloseESG,
}

func (c CircuitID) String() string {
	return string(c)
}

// Valid returns true if c is one of the registry circuits.
func (c CircuitID) Valid() bool {
	for _, known := range Circuits {
		if c == known {
			return true
		}
	}
	return false
}

// Arguments are the witness-approved arguments of a circuit call. Only the
// fields used by the circuit are set:
//
//	register_product:    ProductID, OwnerID, Commitment
//	mint_nft:            ProductID
//	verify_authenticity: ProductID, Proof (32 bytes)
//	disclose_esg:        ProductID, Proof (64 bytes)
type Arguments struct {
	ProductID  ID     `json:"product_id" cbor:"1,keyasint" msgpack:"product_id"`
	OwnerID    uint64 `json:"owner_id,omitempty" cbor:"2,keyasint,omitempty" msgpack:"owner_id,omitempty"`
	Commitment []byte `json:"commitment,omitempty" cbor:"3,keyasint,omitempty" msgpack:"commitment,omitempty"`
	Proof      []byte `json:"proof,omitempty" cbor:"4,keyasint,omitempty" msgpack:"proof,omitempty"`
}

// Call is the descriptor handed to the proving and submission pipeline.
type Call struct {
	Circuit  CircuitID `json:"circuit" cbor:"1,keyasint" msgpack:"circuit"`
	Contract Address   `json:"contract" cbor:"2,keyasint" msgpack:"contract"`
	Args     Arguments `json:"args" cbor:"3,keyasint" msgpack:"args"`
}

// TransactionResult is returned once a call has been accepted by the ledger.
type TransactionResult struct {
	TxHash string `json:"tx_hash"`
}
