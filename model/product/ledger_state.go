package product

// Counters are the scalar fields of the registry contract's public state.
type Counters struct {
	TotalProducts uint64
	TotalNFTs     uint64
	Nonce         uint64
}

// LedgerState is a point-in-time, read-only view of a registry contract's
// public state. It is fetched fresh for every operation attempt and is never
// mutated after construction.
type LedgerState struct {
	counters      Counters
	productStatus map[ID]bool
	nftMinted     map[ID]bool
}

// NewLedgerState builds a snapshot. The given maps are copied, so the caller
// may keep using them.
func NewLedgerState(counters Counters, productStatus map[ID]bool, nftMinted map[ID]bool) *LedgerState {
	return &LedgerState{
		counters:      counters,
		productStatus: copyMap(productStatus),
		nftMinted:     copyMap(nftMinted),
	}
}

// IsRegistered returns true if the product is a member of product_status.
func (s *LedgerState) IsRegistered(id ID) bool {
	_, ok := s.productStatus[id]
	return ok
}

// IsMinted returns true if nft_minted holds true for the product. Absent
// entries and entries set to false both count as not minted.
func (s *LedgerState) IsMinted(id ID) bool {
	return s.nftMinted[id]
}

// Stage returns the lifecycle stage of the product in this snapshot. A mint
// flag on an unregistered product does not make it minted.
func (s *LedgerState) Stage(id ID) Stage {
	switch {
	case !s.IsRegistered(id):
		return StageUnknown
	case s.IsMinted(id):
		return StageMinted
	default:
		return StageRegistered
	}
}

func (s *LedgerState) TotalProducts() uint64 { return s.counters.TotalProducts }

func (s *LedgerState) TotalNFTs() uint64 { return s.counters.TotalNFTs }

func (s *LedgerState) Nonce() uint64 { return s.counters.Nonce }

func (s *LedgerState) Counters() Counters { return s.counters }

// ProductStatus returns a copy of the product_status map.
func (s *LedgerState) ProductStatus() map[ID]bool {
	return copyMap(s.productStatus)
}

// NFTMinted returns a copy of the nft_minted map.
func (s *LedgerState) NFTMinted() map[ID]bool {
	return copyMap(s.nftMinted)
}

func copyMap(m map[ID]bool) map[ID]bool {
	c := make(map[ID]bool, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
