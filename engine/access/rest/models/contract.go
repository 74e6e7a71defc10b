package models

import (
	"fmt"
	"strconv"

	"github.com/verichain/verichain/model/product"
)

// Deployment is the response to a contract deployment.
type Deployment struct {
	Address string `json:"address"`
}

// ContractState is the public state of a registry contract. Product ids are
// encoded as decimal strings, both as values and as map keys.
type ContractState struct {
	Address       string          `json:"address"`
	TotalProducts uint64          `json:"total_products,string"`
	TotalNFTs     uint64          `json:"total_nfts,string"`
	Nonce         uint64          `json:"nonce,string"`
	ProductStatus map[string]bool `json:"product_status"`
	NFTMinted     map[string]bool `json:"nft_minted"`
}

func (c *ContractState) Build(address product.Address, state *product.LedgerState) {
	c.Address = address.String()
	c.TotalProducts = state.TotalProducts()
	c.TotalNFTs = state.TotalNFTs()
	c.Nonce = state.Nonce()
	c.ProductStatus = encodeEntries(state.ProductStatus())
	c.NFTMinted = encodeEntries(state.NFTMinted())
}

// LedgerState converts the response back into a snapshot.
func (c *ContractState) LedgerState() (*product.LedgerState, error) {
	status, err := decodeEntries(c.ProductStatus)
	if err != nil {
		return nil, fmt.Errorf("invalid product_status: %w", err)
	}
	minted, err := decodeEntries(c.NFTMinted)
	if err != nil {
		return nil, fmt.Errorf("invalid nft_minted: %w", err)
	}
	counters := product.Counters{
		TotalProducts: c.TotalProducts,
		TotalNFTs:     c.TotalNFTs,
		Nonce:         c.Nonce,
	}
	return product.NewLedgerState(counters, status, minted), nil
}

func encodeEntries(m map[product.ID]bool) map[string]bool {
	out := make(map[string]bool, len(m))
	for id, v := range m {
		out[id.String()] = v
	}
	return out
}

func decodeEntries(m map[string]bool) (map[product.ID]bool, error) {
	out := make(map[product.ID]bool, len(m))
	for key, v := range m {
		id, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q: %w", key, err)
		}
		out[product.ID(id)] = v
	}
	return out, nil
}
