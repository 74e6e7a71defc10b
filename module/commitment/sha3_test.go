package commitment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/verichain/verichain/model/product"
)

func TestSHA3Committer(t *testing.T) {
	c := NewSHA3Committer()

	t.Run("deterministic", func(t *testing.T) {
		a := c.Commit([]byte("serial:ABC-123|batch:7"))
		b := CommitString(c, "serial:ABC-123|batch:7")
		assert.Equal(t, a, b)
		assert.Len(t, a.Bytes(), product.CommitmentLength)
	})

	t.Run("distinct inputs give distinct commitments", func(t *testing.T) {
		assert.NotEqual(t, c.Commit([]byte("a")), c.Commit([]byte("b")))
	})

	t.Run("domain separated", func(t *testing.T) {
		plain := sha3.Sum256([]byte("a"))
		assert.NotEqual(t, product.Commitment(plain), c.Commit([]byte("a")))
	})

	t.Run("round trips through bytes", func(t *testing.T) {
		commitment := c.Commit(nil)
		decoded, err := product.CommitmentFromBytes(commitment.Bytes())
		require.NoError(t, err)
		assert.Equal(t, commitment, decoded)
	})
}
