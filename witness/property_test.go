package witness

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/verichain/verichain/model/product"
)

// ledgerStateGen draws snapshots with arbitrary product_status and nft_minted
// contents, including nft_minted entries for unregistered products.
func ledgerStateGen() *rapid.Generator[*product.LedgerState] {
	return rapid.Custom(func(t *rapid.T) *product.LedgerState {
		status := make(map[product.ID]bool)
		minted := make(map[product.ID]bool)
		for _, id := range rapid.SliceOfN(rapid.Uint64Range(0, 64), 0, 16).Draw(t, "registered") {
			status[product.ID(id)] = true
		}
		for _, id := range rapid.SliceOfN(rapid.Uint64Range(0, 64), 0, 16).Draw(t, "minted") {
			minted[product.ID(id)] = rapid.Bool().Draw(t, "minted_value")
		}
		return product.NewLedgerState(product.Counters{}, status, minted)
	})
}

func productIDGen() *rapid.Generator[product.ID] {
	return rapid.Custom(func(t *rapid.T) product.ID {
		return product.ID(rapid.Uint64Range(0, 64).Draw(t, "product_id"))
	})
}

func bytesGen(n int) *rapid.Generator[[]byte] {
	return rapid.SliceOfN(rapid.Byte(), n, n)
}

func TestRegisterProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := ledgerStateGen().Draw(t, "state")
		id := productIDGen().Draw(t, "id")
		commitment := bytesGen(product.CommitmentLength).Draw(t, "commitment")

		_, err := ValidateRegister(state, RegisterProduct{ProductID: id, Commitment: commitment})
		if state.IsRegistered(id) {
			if !IsAlreadyRegisteredError(err) {
				t.Fatalf("expected AlreadyRegistered for registered product %d, got %v", id, err)
			}
		} else if err != nil {
			t.Fatalf("expected unregistered product %d to be accepted, got %v", id, err)
		}
	})
}

func TestRegisterRejectsInexactCommitment(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		length := rapid.IntRange(0, 96).Filter(func(n int) bool { return n != product.CommitmentLength }).Draw(t, "length")
		id := productIDGen().Draw(t, "id")
		_, err := ValidateRegister(product.NewLedgerState(product.Counters{}, nil, nil), RegisterProduct{
			ProductID:  id,
			Commitment: make([]byte, length),
		})
		if !IsInvalidCommitmentLengthError(err) {
			t.Fatalf("expected InvalidCommitmentLength for %d bytes, got %v", length, err)
		}
	})
}

func TestMintProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := ledgerStateGen().Draw(t, "state")
		id := productIDGen().Draw(t, "id")

		_, err := ValidateMint(state, MintNFT{ProductID: id})
		switch {
		case !state.IsRegistered(id):
			// regardless of nft_minted contents
			if !IsNotRegisteredError(err) {
				t.Fatalf("expected NotRegistered, got %v", err)
			}
		case state.IsMinted(id):
			if !IsAlreadyMintedError(err) {
				t.Fatalf("expected AlreadyMinted, got %v", err)
			}
		default:
			if err != nil {
				t.Fatalf("expected acceptance, got %v", err)
			}
		}
	})
}

func TestVerifyProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := ledgerStateGen().Draw(t, "state")
		id := productIDGen().Draw(t, "id")
		proof := bytesGen(product.AuthenticityProofLength).Draw(t, "proof")

		_, err := ValidateVerify(state, VerifyAuthenticity{ProductID: id, Proof: proof})
		if state.IsMinted(id) {
			if err != nil {
				t.Fatalf("expected minted product to be accepted, got %v", err)
			}
		} else if !IsNotMintedError(err) {
			t.Fatalf("expected NotMinted, got %v", err)
		}
	})
}

func TestDiscloseESGProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		state := ledgerStateGen().Draw(t, "state")
		id := productIDGen().Draw(t, "id")
		proof := bytesGen(product.ESGProofLength).Draw(t, "proof")

		_, err := ValidateDiscloseESG(state, DiscloseESG{ProductID: id, Proof: proof})
		if state.IsRegistered(id) {
			if err != nil {
				t.Fatalf("expected registered product to be accepted, got %v", err)
			}
		} else if !IsNotRegisteredError(err) {
			t.Fatalf("expected NotRegistered, got %v", err)
		}
	})
}

func TestProofLengthsAreExact(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := productIDGen().Draw(t, "id")
		state := product.NewLedgerState(product.Counters{}, map[product.ID]bool{id: true}, map[product.ID]bool{id: true})

		verifyLength := rapid.IntRange(0, 128).Filter(func(n int) bool { return n != product.AuthenticityProofLength }).Draw(t, "verify_length")
		_, err := ValidateVerify(state, VerifyAuthenticity{ProductID: id, Proof: make([]byte, verifyLength)})
		if !IsInvalidProofLengthError(err) {
			t.Fatalf("expected InvalidProofLength for %d-byte authenticity proof, got %v", verifyLength, err)
		}

		esgLength := rapid.IntRange(0, 128).Filter(func(n int) bool { return n != product.ESGProofLength }).Draw(t, "esg_length")
		_, err = ValidateDiscloseESG(state, DiscloseESG{ProductID: id, Proof: make([]byte, esgLength)})
		if !IsInvalidProofLengthError(err) {
			t.Fatalf("expected InvalidProofLength for %d-byte ESG proof, got %v", esgLength, err)
		}
	})
}
