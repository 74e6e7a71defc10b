package metrics

const (
	LabelCircuit = "circuit"
	LabelReason  = "reason"
	LabelKind    = "kind"
	LabelRoute   = "route"
	LabelMethod  = "method"
	LabelCode    = "code"
)
