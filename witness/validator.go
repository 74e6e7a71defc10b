// Package witness implements the off-chain precondition checks that guard
// every registry circuit call.
//
// Validators are pure: given a ledger snapshot and the parameters of an
// operation they either return the arguments to forward to the circuit, or
// the first violated precondition. Checks run in a fixed order: membership in
// product_status first, then the mint status, then argument lengths.
package witness

import (
	"github.com/verichain/verichain/model/product"
)

// ValidateRegister approves registering a product that is not yet a member of
// product_status. The owner is not checked against any identity system.
func ValidateRegister(state *product.LedgerState, params RegisterProduct) (product.Arguments, error) {
	err := checkNotRegistered(state, params.ProductID)
	if err != nil {
		return product.Arguments{}, err
	}

	err = checkCommitmentLength(params.Commitment)
	if err != nil {
		return product.Arguments{}, err
	}

	return product.Arguments{
		ProductID:  params.ProductID,
		OwnerID:    params.OwnerID,
		Commitment: params.Commitment,
	}, nil
}

// ValidateMint approves minting the NFT of a registered, not yet minted product.
func ValidateMint(state *product.LedgerState, params MintNFT) (product.Arguments, error) {
	err := checkRegistered(state, params.ProductID)
	if err != nil {
		return product.Arguments{}, err
	}

	err = checkNotMinted(state, params.ProductID)
	if err != nil {
		return product.Arguments{}, err
	}

	return product.Arguments{ProductID: params.ProductID}, nil
}

// ValidateVerify approves an authenticity verification of a minted product.
// Repeated verifications are accepted: the ledger keeps no verified marker.
func ValidateVerify(state *product.LedgerState, params VerifyAuthenticity) (product.Arguments, error) {
	err := checkMinted(state, params.ProductID)
	if err != nil {
		return product.Arguments{}, err
	}

	err = checkProofLength(product.CircuitVerifyAuthenticity, params.Proof, product.AuthenticityProofLength)
	if err != nil {
		return product.Arguments{}, err
	}

	return product.Arguments{
		ProductID: params.ProductID,
		Proof:     params.Proof,
	}, nil
}

// ValidateDiscloseESG approves an ESG disclosure for a registered product,
// irrespective of its mint status. Repeated disclosures are accepted.
func ValidateDiscloseESG(state *product.LedgerState, params DiscloseESG) (product.Arguments, error) {
	err := checkRegistered(state, params.ProductID)
	if err != nil {
		return product.Arguments{}, err
	}

	err = checkProofLength(product.CircuitDiscloseESG, params.Proof, product.ESGProofLength)
	if err != nil {
		return product.Arguments{}, err
	}

	return product.Arguments{
		ProductID: params.ProductID,
		Proof:     params.Proof,
	}, nil
}

func checkNotRegistered(state *product.LedgerState, id product.ID) error {
	if state.IsRegistered(id) {
		return AlreadyRegisteredError{ProductID: id}
	}
	return nil
}

func checkRegistered(state *product.LedgerState, id product.ID) error {
	if !state.IsRegistered(id) {
		return NotRegisteredError{ProductID: id}
	}
	return nil
}

func checkNotMinted(state *product.LedgerState, id product.ID) error {
	if state.IsMinted(id) {
		return AlreadyMintedError{ProductID: id}
	}
	return nil
}

func checkMinted(state *product.LedgerState, id product.ID) error {
	if !state.IsMinted(id) {
		return NotMintedError{ProductID: id}
	}
	return nil
}

func checkCommitmentLength(commitment []byte) error {
	if len(commitment) != product.CommitmentLength {
		return InvalidCommitmentLengthError{
			Actual:   len(commitment),
			Expected: product.CommitmentLength,
		}
	}
	return nil
}

func checkProofLength(circuit product.CircuitID, proof []byte, expected int) error {
	if len(proof) != expected {
		return InvalidProofLengthError{
			Circuit:  circuit,
			Actual:   len(proof),
			Expected: expected,
		}
	}
	return nil
}
