package emulator

import (
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"

	"github.com/verichain/verichain/model/product"
)

var encMode = func() cbor.EncMode {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Errorf("could not create canonical cbor encoding mode: %w", err))
	}
	return mode
}()

// envelope is the canonical encoding input of a transaction hash. The nonce
// makes repeated identical calls hash differently.
type envelope struct {
	Call  product.Call `cbor:"1,keyasint"`
	Nonce uint64       `cbor:"2,keyasint"`
}

// transactionHash returns the hex SHA3-256 digest of the canonical CBOR
// encoding of the call and the nonce it was applied at.
func transactionHash(call *product.Call, nonce uint64) (string, error) {
	data, err := encMode.Marshal(envelope{Call: *call, Nonce: nonce})
	if err != nil {
		return "", fmt.Errorf("could not encode transaction: %w", err)
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// contractAddress derives a contract address from a random seed.
func contractAddress(seed []byte) product.Address {
	sum := sha3.Sum256(seed)
	return product.Address(hex.EncodeToString(sum[:]))
}
