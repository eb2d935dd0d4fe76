package gaadapter

import (
	"testing"

	"github.com/gangstatracer/netwlgen/internal/flow"
)

// flowsEqual reports whether a and b carry the same node references and FX
// point content, in order.
func flowsEqual(a, b []flow.Flow) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Node1() != b[i].Node1() || a[i].Node2() != b[i].Node2() {
			return false
		}
		afxs, bfxs := a[i].FXs(), b[i].FXs()
		if len(afxs) != len(bfxs) {
			return false
		}
		for j := range afxs {
			ap, bp := afxs[j].PointsNormalized(), bfxs[j].PointsNormalized()
			if len(ap) != len(bp) {
				return false
			}
			for k := range ap {
				if ap[k] != bp[k] {
					return false
				}
			}
		}
	}
	return true
}

func TestNewIndividualEvaluates(t *testing.T) {
	ind, err := NewIndividual()
	if err != nil {
		t.Fatal(err)
	}

	fitness, err := ind.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if fitness < 0 {
		t.Fatalf("expected non-negative fitness, got %g", fitness)
	}
}

func TestCloneIndependentFromMutation(t *testing.T) {
	ind, err := NewIndividual()
	if err != nil {
		t.Fatal(err)
	}
	clone := ind.Clone()

	if err := clone.Mutate(MutateOpts{PMut: 0.5}); err != nil {
		t.Fatal(err)
	}

	if err := ind.Genome.Validate(); err != nil {
		t.Fatalf("mutating clone invalidated original: %v", err)
	}
}

func TestCrossoverProducesEvaluableOffspring(t *testing.T) {
	mom, err := NewIndividual()
	if err != nil {
		t.Fatal(err)
	}
	dad, err := NewIndividual()
	if err != nil {
		t.Fatal(err)
	}

	sister, brother, err := Crossover(mom, dad)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := sister.Evaluate(); err != nil {
		t.Fatal(err)
	}
	if _, err := brother.Evaluate(); err != nil {
		t.Fatal(err)
	}

	// Guard against a degenerate crossover that hands brother a full,
	// unrecombined clone of dad (and symmetrically for sister vs mom).
	if flowsEqual(brother.Genome.Flows, dad.Genome.Flows) {
		t.Fatal("brother's flows are identical to dad's — crossover did not recombine")
	}
	if flowsEqual(sister.Genome.Flows, mom.Genome.Flows) {
		t.Fatal("sister's flows are identical to mom's — crossover did not recombine")
	}
}
