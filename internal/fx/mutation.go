package fx

import "math/rand"

// MutationKind is a closed enumeration of the four ways Mutation can alter
// an FX, replacing the virtual-dispatch shape of the original Python
// __mutation_vi/__mutation_pi/__add_random_point/__remove_point quartet
// (spec.md §9 "Mutation as closed choice"). Exposing it as data makes each
// variant independently testable via MutateKind.
type MutationKind int

const (
	MutateValue MutationKind = iota
	MutateProbability
	AddPoint
	RemovePoint
)

// Mutation applies exactly one randomly chosen mutation to the distribution:
// mutate a point's value, mutate a point's probability, add a fresh point,
// or remove a point. RemovePoint is excluded from the choice when only one
// point remains, since FX must never end up with zero points (spec.md
// §4.1).
func (f *FX) Mutation() error {
	if len(f.Points) == 0 {
		return ErrEmptyDistribution
	}

	i := rand.Intn(len(f.Points))
	n := 4
	if len(f.Points) == 1 {
		n = 3
	}

	return f.MutateKind(MutationKind(rand.Intn(n)), i)
}

// MutateKind applies a single named mutation variant at point index i
// (ignored for AddPoint). It is exported so the four variants can be tested
// independently of Mutation's random dispatch.
func (f *FX) MutateKind(kind MutationKind, i int) error {
	switch kind {
	case MutateValue:
		return f.mutateValueAt(i)
	case MutateProbability:
		return f.mutateProbabilityAt(i)
	case AddPoint:
		return f.addRandomPoint()
	case RemovePoint:
		return f.removePointAt(i)
	default:
		return ErrInvalidDomain
	}
}

// MutationV restricts the choice to "mutate a value" across a random point,
// matching the original's partial mutation_v entry point.
func (f *FX) MutationV() error {
	if len(f.Points) == 0 {
		return ErrEmptyDistribution
	}
	return f.mutateValueAt(rand.Intn(len(f.Points)))
}

// MutationP restricts the choice to "mutate a probability", matching the
// original's partial mutation_p entry point.
func (f *FX) MutationP() error {
	if len(f.Points) == 0 {
		return ErrEmptyDistribution
	}
	return f.mutateProbabilityAt(rand.Intn(len(f.Points)))
}

func (f *FX) mutateValueAt(i int) error {
	if i < 0 || i >= len(f.Points) {
		return ErrInvalidDomain
	}
	f.Points[i].V = f.coerce(f.VFrom + rand.Float64()*f.VDelta)
	return nil
}

func (f *FX) mutateProbabilityAt(i int) error {
	if i < 0 || i >= len(f.Points) {
		return ErrInvalidDomain
	}
	f.Points[i].P = rand.Float64() * 0.99

	sortPoints(f.Points)
	f.Points[len(f.Points)-1].P = 1.0
	return nil
}

func (f *FX) addRandomPoint() error {
	f.Points = append(f.Points, f.randomPoint())
	sortPoints(f.Points)
	f.Points[len(f.Points)-1].P = 1.0
	return nil
}

func (f *FX) removePointAt(i int) error {
	if len(f.Points) <= 1 {
		// Disabled variant; caller should not reach here via Mutation, but
		// MutateKind callers get a clear error rather than a corrupted
		// zero-point FX.
		return ErrEmptyDistribution
	}
	if i < 0 || i >= len(f.Points) {
		return ErrInvalidDomain
	}
	f.Points = append(f.Points[:i], f.Points[i+1:]...)
	f.Points[len(f.Points)-1].P = 1.0
	return nil
}

func sortPoints(points []Point) {
	// Small slices (RandomInitialize creates at most 10 points and AddPoint
	// grows them one at a time); insertion sort keeps this allocation-free
	// and avoids pulling in sort.Slice's closure here.
	for i := 1; i < len(points); i++ {
		for j := i; j > 0 && points[j].P < points[j-1].P; j-- {
			points[j], points[j-1] = points[j-1], points[j]
		}
	}
}
