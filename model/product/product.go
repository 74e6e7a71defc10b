package product

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

const (
	// CommitmentLength is the byte length of a product commitment.
	CommitmentLength = 32
	// AuthenticityProofLength is the byte length of the proof accepted by verify_authenticity.
	AuthenticityProofLength = 32
	// ESGProofLength is the byte length of the proof accepted by disclose_esg.
	ESGProofLength = 64
)

// ID uniquely identifies a physical product on the registry.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses a decimal product identifier.
func ParseID(s string) (ID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid product id %q: %w", s, err)
	}
	return ID(v), nil
}

// Address is the hex encoded address of a deployed registry contract.
type Address string

func (a Address) String() string {
	return string(a)
}

// Commitment is the one-way commitment of a product's private metadata.
// It is produced off-chain, bound to a product at registration and never
// inspected afterwards.
type Commitment [CommitmentLength]byte

// ZeroCommitment is the commitment made of 32 zero bytes.
var ZeroCommitment Commitment

func (c Commitment) String() string {
	return hex.EncodeToString(c[:])
}

// Bytes returns a copy of the commitment as a byte slice.
func (c Commitment) Bytes() []byte {
	b := make([]byte, CommitmentLength)
	copy(b, c[:])
	return b
}

// CommitmentFromBytes converts a 32-byte slice into a Commitment.
func CommitmentFromBytes(b []byte) (Commitment, error) {
	var c Commitment
	if len(b) != CommitmentLength {
		return c, fmt.Errorf("commitment must be %d bytes, got %d", CommitmentLength, len(b))
	}
	copy(c[:], b)
	return c, nil
}

// DecodeHex decodes a hex string, tolerating an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("could not decode hex: %w", err)
	}
	return b, nil
}
