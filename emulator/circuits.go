package emulator

import (
	"github.com/verichain/verichain/emulator/types"
	"github.com/verichain/verichain/model/product"
)

// circuit applies the assertions and state updates of one registry circuit to
// a contract. It mutates contract only if all assertions hold.
type circuit func(contract *types.Contract, args product.Arguments) error

var circuits = map[product.CircuitID]circuit{
	product.CircuitRegisterProduct:    registerProduct,
	product.CircuitMintNFT:            mintNFT,
	product.CircuitVerifyAuthenticity: verifyAuthenticity,
	product.CircuitDiscloseESG:        discloseESG,
}

func assertion(circuit product.CircuitID, id product.ID, msg string) error {
	return &CircuitAssertionError{Circuit: circuit, ProductID: id, Message: msg}
}

func registerProduct(c *types.Contract, args product.Arguments) error {
	if _, ok := c.ProductStatus[args.ProductID]; ok {
		return assertion(product.CircuitRegisterProduct, args.ProductID, "product already registered")
	}
	if len(args.Commitment) != product.CommitmentLength {
		return assertion(product.CircuitRegisterProduct, args.ProductID, "invalid commitment")
	}

	c.ProductStatus[args.ProductID] = true
	c.Products[args.ProductID] = types.Product{
		OwnerID:    args.OwnerID,
		Commitment: append([]byte(nil), args.Commitment...),
	}
	c.TotalProducts++
	return nil
}

func mintNFT(c *types.Contract, args product.Arguments) error {
	if _, ok := c.ProductStatus[args.ProductID]; !ok {
		return assertion(product.CircuitMintNFT, args.ProductID, "product not registered")
	}
	if c.NFTMinted[args.ProductID] {
		return assertion(product.CircuitMintNFT, args.ProductID, "NFT already minted")
	}

	c.NFTMinted[args.ProductID] = true
	c.TotalNFTs++
	return nil
}

func verifyAuthenticity(c *types.Contract, args product.Arguments) error {
	if !c.NFTMinted[args.ProductID] {
		return assertion(product.CircuitVerifyAuthenticity, args.ProductID, "product must be minted before verification")
	}
	if len(args.Proof) != product.AuthenticityProofLength {
		return assertion(product.CircuitVerifyAuthenticity, args.ProductID, "invalid proof")
	}
	return nil
}

func discloseESG(c *types.Contract, args product.Arguments) error {
	if _, ok := c.ProductStatus[args.ProductID]; !ok {
		return assertion(product.CircuitDiscloseESG, args.ProductID, "product not registered")
	}
	if len(args.Proof) != product.ESGProofLength {
		return assertion(product.CircuitDiscloseESG, args.ProductID, "invalid proof")
	}
	return nil
}
