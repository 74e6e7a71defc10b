package unittest

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"

	"github.com/verichain/verichain/model/product"
)

// ProductIDFixture returns a random product id.
func ProductIDFixture() product.ID {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return product.ID(binary.BigEndian.Uint64(b[:]))
}

// RandomBytes returns n random bytes.
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return b
}

// CommitmentFixture returns a random 32-byte commitment.
func CommitmentFixture() []byte {
	return RandomBytes(product.CommitmentLength)
}

// AuthenticityProofFixture returns a random 32-byte authenticity proof.
func AuthenticityProofFixture() []byte {
	return RandomBytes(product.AuthenticityProofLength)
}

// ESGProofFixture returns a random 64-byte ESG proof.
func ESGProofFixture() []byte {
	return RandomBytes(product.ESGProofLength)
}

// AddressFixture returns a random contract address.
func AddressFixture() product.Address {
	return product.Address(hex.EncodeToString(RandomBytes(32)))
}

// TxHashFixture returns a random transaction hash.
func TxHashFixture() string {
	return hex.EncodeToString(RandomBytes(32))
}

// LedgerStateFixture returns a ledger snapshot built from the given options.
// Without options the snapshot is empty.
func LedgerStateFixture(opts ...func(*LedgerStateBuilder)) *product.LedgerState {
	b := &LedgerStateBuilder{
		status: make(map[product.ID]bool),
		minted: make(map[product.ID]bool),
	}
	for _, apply := range opts {
		apply(b)
	}
	return b.Build()
}

// LedgerStateBuilder accumulates product_status and nft_minted entries.
type LedgerStateBuilder struct {
	status   map[product.ID]bool
	minted   map[product.ID]bool
	counters product.Counters
}

func (b *LedgerStateBuilder) Build() *product.LedgerState {
	counters := b.counters
	counters.TotalProducts = uint64(len(b.status))
	counters.TotalNFTs = 0
	for _, m := range b.minted {
		if m {
			counters.TotalNFTs++
		}
	}
	return product.NewLedgerState(counters, b.status, b.minted)
}

// WithRegistered adds the products to product_status.
func WithRegistered(ids ...product.ID) func(*LedgerStateBuilder) {
	return func(b *LedgerStateBuilder) {
		for _, id := range ids {
			b.status[id] = true
		}
	}
}

// WithMinted registers the products and marks them as minted.
func WithMinted(ids ...product.ID) func(*LedgerStateBuilder) {
	return func(b *LedgerStateBuilder) {
		for _, id := range ids {
			b.status[id] = true
			b.minted[id] = true
		}
	}
}

// WithMintedEntry sets an nft_minted entry without touching product_status.
// It allows building snapshots that explicitly carry a false entry.
func WithMintedEntry(id product.ID, minted bool) func(*LedgerStateBuilder) {
	return func(b *LedgerStateBuilder) {
		b.minted[id] = minted
	}
}

// WithNonce sets the nonce counter.
func WithNonce(nonce uint64) func(*LedgerStateBuilder) {
	return func(b *LedgerStateBuilder) {
		b.counters.Nonce = nonce
	}
}
