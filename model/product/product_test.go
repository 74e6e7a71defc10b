package product_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/verichain/verichain/model/product"
)

func TestLedgerState_CopiesMaps(t *testing.T) {
	status := map[product.ID]bool{1: true}
	minted := map[product.ID]bool{1: true}
	state := product.NewLedgerState(product.Counters{TotalProducts: 1, TotalNFTs: 1, Nonce: 2}, status, minted)

	status[2] = true
	delete(minted, 1)
	assert.False(t, state.IsRegistered(2))
	assert.True(t, state.IsMinted(1))

	returned := state.ProductStatus()
	returned[3] = true
	assert.False(t, state.IsRegistered(3))

	assert.Equal(t, product.Counters{TotalProducts: 1, TotalNFTs: 1, Nonce: 2}, state.Counters())
}

func TestLedgerState_Stage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := product.ID(rapid.Uint64().Draw(t, "id"))
		registered := rapid.Bool().Draw(t, "registered")
		minted := rapid.Bool().Draw(t, "minted")

		status := map[product.ID]bool{}
		if registered {
			status[id] = true
		}
		state := product.NewLedgerState(product.Counters{}, status, map[product.ID]bool{id: minted})

		switch {
		case !registered:
			assert.Equal(t, product.StageUnknown, state.Stage(id))
		case minted:
			assert.Equal(t, product.StageMinted, state.Stage(id))
		default:
			assert.Equal(t, product.StageRegistered, state.Stage(id))
		}
		// an explicit false entry counts as not minted
		assert.Equal(t, minted, state.IsMinted(id))
	})
}

func TestParseID(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		id := product.ID(rapid.Uint64().Draw(t, "id"))
		parsed, err := product.ParseID(" " + id.String() + "\n")
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	for _, invalid := range []string{"", "-1", "0x10", "18446744073709551616", "abc"} {
		_, err := product.ParseID(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestCommitment(t *testing.T) {
	b := make([]byte, product.CommitmentLength)
	b[0] = 0xab
	c, err := product.CommitmentFromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, "ab"+strings.Repeat("00", 31), c.String())

	copied := c.Bytes()
	copied[0] = 0
	assert.Equal(t, byte(0xab), c[0])

	_, err = product.CommitmentFromBytes(b[:31])
	assert.Error(t, err)
}

func TestDecodeHex(t *testing.T) {
	b, err := product.DecodeHex(" 0xdeadBEEF ")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, b)

	_, err = product.DecodeHex("xyz")
	assert.Error(t, err)
}

func TestCircuitID_Valid(t *testing.T) {
	for _, c := range product.Circuits {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, product.CircuitID("burn").Valid())
	assert.False(t, product.CircuitID("").Valid())
}
