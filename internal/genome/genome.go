// Package genome implements the Genome model of spec.md §3/§4.5: the
// aggregate of networks, nodes, flows, the flow-count distribution (FFlow)
// and the experiment horizon (Texp), together with the genetic
// operators (Initialize/Mutate/Crossover) that a GA driver invokes through
// internal/gaadapter.
//
// Grounded on original_source/genetic_engine.py's NetworkGenome and
// original_source/model.py's diff/crossover, reworked onto the mask-based
// internal/xlate.Net form (spec.md marks the class-based form legacy) and
// internal/flow.Flow's Go interface in place of pyevolve's GenomeBase
// contract.
package genome

import (
	"fmt"
	"math"
	"strings"

	"github.com/gangstatracer/netwlgen/internal/flow"
	"github.com/gangstatracer/netwlgen/internal/fx"
	"github.com/gangstatracer/netwlgen/internal/xlate"
)

// Genome is the full chromosome of one simulated network (spec.md §3
// "Genome").
type Genome struct {
	Nets  []xlate.Net
	Nodes []int
	Flows []flow.Flow
	FFlow *fx.FX
	Texp  float64
}

// New validates and constructs a Genome. Every node must reference a valid
// net index, and every flow must reference valid node indices (spec.md §3
// "Genome" invariants).
func New(nets []xlate.Net, nodes []int, flows []flow.Flow, fflow *fx.FX, texp float64) (*Genome, error) {
	g := &Genome{Nets: nets, Nodes: nodes, Flows: flows, FFlow: fflow, Texp: texp}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks the index-validity invariant (spec.md §8 scenario 5):
// every node references an existing net, every flow references existing
// nodes, and the genome isn't degenerate (no nets/nodes/flows at all).
func (g *Genome) Validate() error {
	if len(g.Nets) == 0 || len(g.Nodes) == 0 || len(g.Flows) == 0 {
		return ErrEmptyGenome
	}
	for _, n := range g.Nodes {
		if n < 0 || n >= len(g.Nets) {
			return fmt.Errorf("%w: node references net %d, have %d nets", ErrInvalidNet, n, len(g.Nets))
		}
	}
	for _, f := range g.Flows {
		if f.Node1() < 0 || f.Node1() >= len(g.Nodes) {
			return fmt.Errorf("%w: flow references node %d, have %d nodes", ErrInvalidNode, f.Node1(), len(g.Nodes))
		}
		if f.Node2() < 0 || f.Node2() >= len(g.Nodes) {
			return fmt.Errorf("%w: flow references node %d, have %d nodes", ErrInvalidNode, f.Node2(), len(g.Nodes))
		}
	}
	return nil
}

// Clone deep-copies flows (and thereby their FXs) and fflow; net and node
// tables are copied by value, since they hold no nested mutable state
// (spec.md §3 "Ownership").
func (g *Genome) Clone() *Genome {
	nets := make([]xlate.Net, len(g.Nets))
	copy(nets, g.Nets)

	nodes := make([]int, len(g.Nodes))
	copy(nodes, g.Nodes)

	flows := make([]flow.Flow, len(g.Flows))
	for i, f := range g.Flows {
		flows[i] = f.Clone()
	}

	return &Genome{
		Nets:  nets,
		Nodes: nodes,
		Flows: flows,
		FFlow: g.FFlow.Clone(),
		Texp:  g.Texp,
	}
}

// FXs flattens every flow's FX bundle followed by fflow, in assembly order
// (original_source/genetic_engine.py: "self.fxs + [self.fflow]"). This is
// the full chromosome Diff compares point-by-point.
func (g *Genome) FXs() []*fx.FX {
	var all []*fx.FX
	for _, f := range g.Flows {
		all = append(all, f.FXs()...)
	}
	return append(all, g.FFlow)
}

// String renders a debug-only summary (spec.md supplemented feature;
// original_source/genetic_engine.py's NetworkGenome.__repr__), never used
// for anything but logging.
func (g *Genome) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "texp=%g||nets=%v||nodes=%v||flows=%d", g.Texp, g.Nets, g.Nodes, len(g.Flows))
	return b.String()
}

// Diff computes the root-mean-square distance between two genomes' FX
// chromosomes, over each point's (probability, normalized value) pair
// (spec.md supplemented feature, grounded on original_source/model.py's
// diff). The original zips mismatched chromosome shapes silently, which can
// understate divergence between genomes that aren't actually comparable; we
// reject that case instead with ErrInvariantViolated rather than carry the
// bug forward.
func (g *Genome) Diff(other *Genome) (float64, error) {
	sfxs := g.FXs()
	ofxs := other.FXs()

	if len(sfxs) != len(ofxs) {
		return 0, fmt.Errorf("%w: %d FXs vs %d", ErrInvariantViolated, len(sfxs), len(ofxs))
	}

	var sum float64
	var count int
	for i := range sfxs {
		sp := sfxs[i].PointsNormalized()
		op := ofxs[i].PointsNormalized()
		if len(sp) != len(op) {
			return 0, fmt.Errorf("%w: FX %d has %d points vs %d", ErrInvariantViolated, i, len(sp), len(op))
		}
		for j := range sp {
			dp := sp[j].P - op[j].P
			dv := sp[j].V - op[j].V
			sum += dp*dp + dv*dv
			count += 2
		}
	}
	if count == 0 {
		return 0, nil
	}
	return math.Sqrt(sum / float64(count)), nil
}
