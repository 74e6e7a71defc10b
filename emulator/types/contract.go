// Package types defines the records kept by the emulated ledger.
package types

import (
	"time"

	"github.com/verichain/verichain/model/product"
)

// Contract is the ledger-side state of one registry contract instance.
type Contract struct {
	Address       product.Address        `msgpack:"address"`
	TotalProducts uint64                 `msgpack:"total_products"`
	TotalNFTs     uint64                 `msgpack:"total_nfts"`
	Nonce         uint64                 `msgpack:"nonce"`
	ProductStatus map[product.ID]bool    `msgpack:"product_status"`
	NFTMinted     map[product.ID]bool    `msgpack:"nft_minted"`
	Products      map[product.ID]Product `msgpack:"products"`
	DeployedAt    time.Time              `msgpack:"deployed_at"`
}

// Product holds the private data anchored by register_product. It is not part
// of the public ledger state.
type Product struct {
	OwnerID    uint64 `msgpack:"owner_id"`
	Commitment []byte `msgpack:"commitment"`
}

// NewContract returns an empty contract deployed at address.
func NewContract(address product.Address, deployedAt time.Time) *Contract {
	return &Contract{
		Address:       address,
		ProductStatus: make(map[product.ID]bool),
		NFTMinted:     make(map[product.ID]bool),
		Products:      make(map[product.ID]Product),
		DeployedAt:    deployedAt,
	}
}

// LedgerState returns the public snapshot of the contract.
func (c *Contract) LedgerState() *product.LedgerState {
	return product.NewLedgerState(
		product.Counters{
			TotalProducts: c.TotalProducts,
			TotalNFTs:     c.TotalNFTs,
			Nonce:         c.Nonce,
		},
		c.ProductStatus,
		c.NFTMinted,
	)
}

// Copy returns a deep copy of the contract.
func (c *Contract) Copy() *Contract {
	cp := *c
	cp.ProductStatus = make(map[product.ID]bool, len(c.ProductStatus))
	for id, v := range c.ProductStatus {
		cp.ProductStatus[id] = v
	}
	cp.NFTMinted = make(map[product.ID]bool, len(c.NFTMinted))
	for id, v := range c.NFTMinted {
		cp.NFTMinted[id] = v
	}
	cp.Products = make(map[product.ID]Product, len(c.Products))
	for id, p := range c.Products {
		p.Commitment = append([]byte(nil), p.Commitment...)
		cp.Products[id] = p
	}
	return &cp
}
