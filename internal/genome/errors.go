package genome

import "errors"

var (
	ErrInvalidNet   = errors.New("genome: invalid net reference")
	ErrInvalidNode  = errors.New("genome: invalid node reference")
	ErrEmptyGenome  = errors.New("genome: genome has no nets, nodes or flows")
	ErrCrossoverLen = errors.New("genome: crossover requires at least one flow on both parents")

	// ErrInvariantViolated is returned by Diff when the two genomes' FX
	// chromosomes don't line up point-for-point (differing flow/FX count or
	// differing point count within a corresponding FX). The Python original
	// zips mismatched lengths silently; we refuse instead (spec.md §9).
	ErrInvariantViolated = errors.New("genome: chromosomes are not comparable")
)
