package product

// Stage is the lifecycle position of a product as derived from ledger state.
// Verified and ESG-disclosed are gated transitions, not stages: the ledger
// keeps no marker for them.
type Stage int

const (
	StageUnknown Stage = iota
	StageRegistered
	StageMinted
)

func (s Stage) String() string {
	switch s {
	case StageUnknown:
		return "unknown"
	case StageRegistered:
		return "registered"
	case StageMinted:
		return "minted"
	default:
		return "invalid"
	}
}
