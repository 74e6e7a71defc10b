// Package commitment provides the commitment primitive used to bind product
// metadata to a product id without revealing it.
package commitment

import (
	"golang.org/x/crypto/sha3"

	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module"
)

// domainTag separates product commitments from any other SHA3 digest.
var domainTag = []byte("verichain/product-commitment/v1")

// SHA3Committer commits to data with a domain separated SHA3-256 digest.
type SHA3Committer struct{}

var _ module.Committer = (*SHA3Committer)(nil)

func NewSHA3Committer() *SHA3Committer {
	return &SHA3Committer{}
}

func (c *SHA3Committer) Commit(data []byte) product.Commitment {
	var out product.Commitment
	h := sha3.New256()
	_, _ = h.Write(domainTag)
	_, _ = h.Write(data)
	copy(out[:], h.Sum(nil))
	return out
}

// CommitString commits to the UTF-8 bytes of s.
func CommitString(c module.Committer, s string) product.Commitment {
	return c.Commit([]byte(s))
}
