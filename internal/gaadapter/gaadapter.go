// Package gaadapter is the thin binding the external GA driver programs
// against (spec.md §2 C7 "GA adapter"; §6 "Consumed from GA driver"). It
// exposes exactly the five operations a driver invokes — initializer,
// mutator, crossover, evaluator, clone — over internal/genome.Genome,
// without pulling any GA selection/termination logic into the core
// (spec.md §1 non-goal: "the outer GA driver ... delegated to a GA library
// collaborator").
//
// Grounded on original_source/genetic_engine.py's NetworkGenome, which
// wired these same five operations into pyevolve's GenomeBase contract
// (initializator/mutator/crossover/evaluator/copy+clone); here they're
// plain Go functions and methods instead of framework callback
// registrations.
package gaadapter

import (
	"github.com/gangstatracer/netwlgen/internal/genome"
)

// Individual is one GA population member: a Genome plus whatever bookkeeping
// the driver template requires (e.g. pyevolve-style fitness caching is left
// to the driver; Individual only carries the Genome itself).
type Individual struct {
	Genome *genome.Genome
}

// NewIndividual builds a fresh randomly-initialized Individual (spec.md §6
// "initializer()").
func NewIndividual() (*Individual, error) {
	g, err := genome.Initialize()
	if err != nil {
		return nil, err
	}
	return &Individual{Genome: g}, nil
}

// Clone deep-copies the Individual's Genome (spec.md §6 "clone(genome)"),
// as required before handing a genome to a parallel worker (spec.md §5).
func (ind *Individual) Clone() *Individual {
	return &Individual{Genome: ind.Genome.Clone()}
}

// MutateOpts is the keyword-style config a driver may pass to mutator()
// (spec.md §6: "Mutators may receive a keyword-style config {pmut: real}").
type MutateOpts struct {
	// PMut is accepted for interface compatibility with drivers that always
	// supply it; the core's default mutator ignores it and mutates exactly
	// once per call (spec.md §6 "the core's default mutator ignores pmut").
	PMut float64
}

// Mutate applies exactly one of genome's five mutators, chosen uniformly
// (spec.md §6 "mutator(genome)").
func (ind *Individual) Mutate(_ MutateOpts) error {
	return genome.Mutate(ind.Genome)
}

// Crossover performs one-point crossover between two Individuals, returning
// two offspring (spec.md §6 "crossover(mom, dad) -> (sister, brother)").
func Crossover(mom, dad *Individual) (*Individual, *Individual, error) {
	sister, brother, err := genome.Crossover(mom.Genome, dad.Genome)
	if err != nil {
		return nil, nil, err
	}
	return &Individual{Genome: sister}, &Individual{Genome: brother}, nil
}
