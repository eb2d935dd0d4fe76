// Package fx implements the FX distribution model: a typed, piecewise
// empirical CDF that every evolvable workload parameter is built on
// (spec.md §3, §4.1). It is a direct, idiomatic-Go port of the original
// Python FX class (original_source/fx.py): a point is a (probability,
// value) pair, points are kept sorted by probability with the last point's
// probability pinned to 1.0, and Random draws by inverse-CDF lookup.
package fx

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ValueType distinguishes the two domains FX values can take. Integer
// domains get one extra unit of normalization range over real domains
// (spec.md §3: "the +1 preserves integer counting semantics").
type ValueType int

const (
	Real ValueType = iota
	Integer
)

// Point is one (probability, value) sample of the empirical CDF.
type Point struct {
	P float64
	V float64
}

// Kind names a domain-fixed FX subtype (spec.md §3), used only for String()
// rendering and error messages — it carries no behavior of its own.
type Kind string

const (
	KindGeneric Kind = "fx"
	KindFTP     Kind = "ftp"
	KindFLP     Kind = "flp"
	KindFTTL    Kind = "fttl"
	KindFTF     Kind = "ftf"
	KindFFlow   Kind = "fflow"
	KindFHF     Kind = "fhf"
)

// FX is a mutable, typed empirical CDF over the inclusive range [VFrom, VTo].
type FX struct {
	Kind  Kind
	VType ValueType
	VFrom float64
	VTo   float64

	// VDelta is v_to - v_from for Real, and v_to - v_from + 1 for Integer
	// (spec.md §3).
	VDelta float64

	Points []Point
}

// New constructs an empty FX with the given domain. Points must be attached
// with Load or RandomInitialize before Random can be called.
func New(kind Kind, vFrom, vTo float64, vType ValueType) (*FX, error) {
	if vFrom > vTo {
		return nil, fmt.Errorf("%w: v_from %v > v_to %v", ErrInvalidDomain, vFrom, vTo)
	}

	delta := vTo - vFrom
	if vType == Integer {
		delta++
	}

	return &FX{
		Kind:   kind,
		VType:  vType,
		VFrom:  vFrom,
		VTo:    vTo,
		VDelta: delta,
	}, nil
}

// NewWithPoints constructs an FX and immediately loads points into it.
func NewWithPoints(kind Kind, vFrom, vTo float64, vType ValueType, points []Point) (*FX, error) {
	f, err := New(kind, vFrom, vTo, vType)
	if err != nil {
		return nil, err
	}
	if err := f.Load(points); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FX) coerce(v float64) float64 {
	if f.VType == Integer {
		return math.Trunc(v)
	}
	return v
}

func (f *FX) String() string {
	return fmt.Sprintf("%s[%v,%v] points=%v", f.Kind, f.VFrom, f.VTo, f.Points)
}

// Load validates and installs points: every (p, v) must satisfy 0<=p<=1 and
// VFrom<=v<=VTo, duplicates by p are dropped (first occurrence wins), the
// result is sorted ascending by p, and the last point's p is forced to
// exactly 1.0 (spec.md §4.1).
func (f *FX) Load(points []Point) error {
	if len(points) == 0 {
		return ErrEmptyDistribution
	}

	seen := make(map[float64]bool, len(points))
	loaded := make([]Point, 0, len(points))
	for _, p := range points {
		if p.P < 0 || p.P > 1 {
			return fmt.Errorf("%w: probability %v out of [0,1]", ErrInvalidDomain, p.P)
		}
		if p.V < f.VFrom || p.V > f.VTo {
			return fmt.Errorf("%w: value %v out of [%v,%v]", ErrInvalidDomain, p.V, f.VFrom, f.VTo)
		}
		if seen[p.P] {
			continue
		}
		seen[p.P] = true
		loaded = append(loaded, Point{P: p.P, V: f.coerce(p.V)})
	}

	sort.Slice(loaded, func(i, j int) bool { return loaded[i].P < loaded[j].P })
	loaded[len(loaded)-1].P = 1.0

	f.Points = loaded
	return nil
}

// PointsNormalized maps each point's value into [0,1]: (v-VFrom)/VDelta.
func (f *FX) PointsNormalized() []Point {
	norm := make([]Point, len(f.Points))
	for i, p := range f.Points {
		norm[i] = Point{P: p.P, V: (p.V - f.VFrom) / f.VDelta}
	}
	return norm
}

// Random draws r ~ U[0,1) and returns the value of the first point whose
// probability is >= r. Because the last point's probability is always 1.0,
// this always terminates. A result outside [VFrom, VTo] indicates corrupted
// state and is reported loudly rather than silently clamped (spec.md §7).
func (f *FX) Random() (float64, error) {
	if len(f.Points) == 0 {
		return 0, ErrEmptyDistribution
	}

	r := rand.Float64()
	for _, p := range f.Points {
		if r <= p.P {
			if p.V < f.VFrom || p.V > f.VTo {
				return 0, fmt.Errorf("%w: sampled %v outside [%v,%v]", ErrInvalidDomain, p.V, f.VFrom, f.VTo)
			}
			return p.V, nil
		}
	}

	// Unreachable given Load's last-point==1.0 invariant; only corrupted
	// state (points mutated outside this package) could get here.
	last := f.Points[len(f.Points)-1]
	return last.V, nil
}

// RandomInt is a convenience wrapper for Integer-typed FX callers that want
// an int rather than a float64.
func (f *FX) RandomInt() (int, error) {
	v, err := f.Random()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Clone deep-copies the FX: a fresh Points slice with fresh elements, so
// mutating the clone never mutates the original (spec.md §3 "Ownership",
// §8 "Clone-independence").
func (f *FX) Clone() *FX {
	c := &FX{
		Kind:   f.Kind,
		VType:  f.VType,
		VFrom:  f.VFrom,
		VTo:    f.VTo,
		VDelta: f.VDelta,
		Points: make([]Point, len(f.Points)),
	}
	copy(c.Points, f.Points)
	return c
}

// RandomInitialize replaces Points with 1-10 freshly generated points, then
// loads them (spec.md §4.1).
func (f *FX) RandomInitialize() error {
	n := 1 + rand.Intn(10)
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{
			P: rand.Float64() * 0.99,
			V: f.coerce(f.VFrom + rand.Float64()*f.VDelta),
		}
	}
	return f.Load(points)
}

// randomPoint generates one fresh (p, v) pair in this FX's domain, used by
// the add-point mutation variant. RandomInitialize draws its points with the
// same recipe inline.
func (f *FX) randomPoint() Point {
	return Point{
		P: rand.Float64() * 0.99,
		V: f.coerce(f.VFrom + rand.Float64()*f.VDelta),
	}
}
