package fx

import "errors"

// ErrInvalidDomain is returned when a point or a domain bound violates the
// FX invariants described in spec.md §3: v outside [v_from, v_to], p outside
// [0, 1], v_from > v_to, or a mutation point index out of range.
var ErrInvalidDomain = errors.New("fx: value outside declared domain")

// ErrEmptyDistribution is returned by Load when given no points, by Random
// and the Mutation entry points when no points are loaded, and by the
// RemovePoint variant when only one point remains.
var ErrEmptyDistribution = errors.New("fx: distribution has no points")
