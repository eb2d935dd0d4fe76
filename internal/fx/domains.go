package fx

// Domain-fixed FX subtypes (spec.md §3). The original Python modeled these
// as FX subclasses that pin v_from/v_to/v_type in __init__; Go has no
// subclassing, so each is a constructor returning a plain *FX tagged with
// its Kind for diagnostics.

// NewFTP builds the inter-packet-time distribution: real, [0, 0.1] seconds.
func NewFTP(points []Point) (*FX, error) {
	return NewWithPoints(KindFTP, 0, 0.1, Real, points)
}

// NewFLP builds the L5 payload-length distribution: integer, [100, 1300]
// bytes.
func NewFLP(points []Point) (*FX, error) {
	return NewWithPoints(KindFLP, 100, 1300, Integer, points)
}

// NewFTTL builds the IP TTL distribution: integer, [0, 100].
func NewFTTL(points []Point) (*FX, error) {
	return NewWithPoints(KindFTTL, 0, 100, Integer, points)
}

// NewFTF builds the flow-duration distribution: real, [0, 100] seconds.
func NewFTF(points []Point) (*FX, error) {
	return NewWithPoints(KindFTF, 0, 100, Real, points)
}

// NewFFlow builds the flow-count distribution: integer, [0, 1e6].
func NewFFlow(points []Point) (*FX, error) {
	return NewWithPoints(KindFFlow, 0, 1e6, Integer, points)
}

// NewFHF builds the half-flow/direction-selector distribution: integer,
// [0, 1]. Interpreted by flow.pickDirection: 0 selects direction 2, nonzero
// selects direction 1 (see that function's doc comment for why this is the
// converse of spec.md §4.3.2's prose).
func NewFHF(points []Point) (*FX, error) {
	return NewWithPoints(KindFHF, 0, 1, Integer, points)
}

// Empty variants, for callers (e.g. RandomInitialize-driven construction)
// that build the points afterward.

func EmptyFTP() (*FX, error)   { return New(KindFTP, 0, 0.1, Real) }
func EmptyFLP() (*FX, error)   { return New(KindFLP, 100, 1300, Integer) }
func EmptyFTTL() (*FX, error)  { return New(KindFTTL, 0, 100, Integer) }
func EmptyFTF() (*FX, error)   { return New(KindFTF, 0, 100, Real) }
func EmptyFFlow() (*FX, error) { return New(KindFFlow, 0, 1e6, Integer) }
func EmptyFHF() (*FX, error)   { return New(KindFHF, 0, 1, Integer) }
