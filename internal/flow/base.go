// Package flow implements the Flow descriptors and packet generators of
// spec.md §4.2/§4.3: TCP/UDP/ICMP traffic between two hosts, parameterized
// by FX distributions, expanded deterministically into a timestamped packet
// sequence via github.com/google/gopacket/layers.
package flow

import (
	"math/rand"

	"github.com/gangstatracer/netwlgen/internal/fx"
	"github.com/gangstatracer/netwlgen/internal/xlate"
)

// Flow is the common interface satisfied by FlowTCP, FlowUDP and FlowICMP
// (spec.md §9 "Heterogeneous flow set"): a tagged sum modeled as three
// concrete implementations sharing one interface, dispatching on the
// concrete type at Generate time.
type Flow interface {
	Node1() int
	Node2() int
	FXs() []*fx.FX
	Clone() Flow
	Mutation() error
	Generate(tr *xlate.Translator, t0 float64) ([]Packet, error)

	// ShiftNodeIndices decrements any node reference above deleted by one,
	// following a genome.deleteNode removal (spec.md §4.5 "Mutators";
	// genetic_engine.py's delete_node renumbering pass).
	ShiftNodeIndices(deleted int)

	// SetNodes overwrites both node references outright, used by crossover's
	// index-repair pass (spec.md §4.5 "Crossover";
	// genetic_engine.py's translate_nodes_and_nets).
	SetNodes(node1, node2 int)
}

// base holds the attributes every Flow subtype shares (spec.md §3 "Flow").
type base struct {
	node1, node2 int

	ftp1, flp1, fttl1 *fx.FX
	ftp2, flp2, fttl2 *fx.FX

	ftf *fx.FX
	fhf *fx.FX
}

func newBase(node1, node2 int, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf *fx.FX) base {
	return base{
		node1: node1, node2: node2,
		ftp1: ftp1, flp1: flp1, fttl1: fttl1,
		ftp2: ftp2, flp2: flp2, fttl2: fttl2,
		ftf: ftf, fhf: fhf,
	}
}

func (b *base) Node1() int { return b.node1 }
func (b *base) Node2() int { return b.node2 }

func (b *base) ShiftNodeIndices(deleted int) {
	if b.node1 > deleted {
		b.node1--
	}
	if b.node2 > deleted {
		b.node2--
	}
}

func (b *base) SetNodes(node1, node2 int) {
	b.node1 = node1
	b.node2 = node2
}

// fxs returns the flow's chromosome fragment, in the fixed order the
// original Python assembled self.fxs (ftp1,flp1,fttl1,ftp2,flp2,fttl2,ftf,
// fhf) so Genome-wide enumeration order stays stable.
func (b *base) fxs() []*fx.FX {
	return []*fx.FX{b.ftp1, b.flp1, b.fttl1, b.ftp2, b.flp2, b.fttl2, b.ftf, b.fhf}
}

// cloneBase deep-copies every owned FX (spec.md §3 "Ownership": a clone's
// FXs must be independent of the original's).
func (b *base) cloneBase() base {
	return base{
		node1: b.node1, node2: b.node2,
		ftp1: b.ftp1.Clone(), flp1: b.flp1.Clone(), fttl1: b.fttl1.Clone(),
		ftp2: b.ftp2.Clone(), flp2: b.flp2.Clone(), fttl2: b.fttl2.Clone(),
		ftf: b.ftf.Clone(), fhf: b.fhf.Clone(),
	}
}

// mutateOneOf picks uniformly among the flow's 8 FXs and numScalars scalar
// parameters (ports or ICMP types) and mutates exactly one (spec.md §4.2).
// mutateScalar is invoked with the chosen scalar index when an FX isn't
// picked.
func (b *base) mutateOneOf(numScalars int, mutateScalar func(i int) error) error {
	fxs := b.fxs()
	choice := rand.Intn(len(fxs) + numScalars)
	if choice < len(fxs) {
		return fxs[choice].Mutation()
	}
	return mutateScalar(choice - len(fxs))
}

// directionFX bundles picks the per-direction (ftp, flp, fttl) triple for
// direction 1 or 2.
func (b *base) directionFX(dir int) (ftp, flp, fttl *fx.FX) {
	if dir == 1 {
		return b.ftp1, b.flp1, b.fttl1
	}
	return b.ftp2, b.flp2, b.fttl2
}

// pickDirection resolves fhf.random() into 1 or 2. The mask-based
// translator's spec §4.3.2 prose reads "0 => dir 1, else dir 2", but
// spec.md §8 scenario 1's literal assertion (FHF always yielding 1, first
// packet on dir 1) only holds under the converse mapping; this
// implementation follows the literal scenario, treating fhf==0 as dir 2 and
// any nonzero value as dir 1 (documented in DESIGN.md).
func pickDirection(fhf *fx.FX) (int, error) {
	v, err := fhf.RandomInt()
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 2, nil
	}
	return 1, nil
}

// endTime computes t_end = t0 + ftf.random(), the common prelude of every
// packet generator (spec.md §4.3).
func endTime(ftf *fx.FX, t0 float64) (float64, error) {
	d, err := ftf.Random()
	if err != nil {
		return 0, err
	}
	return t0 + d, nil
}

func coinFlip() int {
	if rand.Intn(2) == 0 {
		return 1
	}
	return 2
}
