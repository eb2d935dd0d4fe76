package xlate

import "errors"

// ErrInvalidDomain is returned for malformed network descriptors (mask bits
// outside [1,31], or an unknown legacy network class).
var ErrInvalidDomain = errors.New("xlate: value outside declared domain")

// ErrInvalidIndex is returned when a node references a network index that
// doesn't exist.
var ErrInvalidIndex = errors.New("xlate: node references unknown network")

// ErrAddressExhausted is returned by the mask-based New when a mask value
// has no subnet left, a network cannot hold another host, or an address
// would be assigned twice (spec.md §7). NewLegacy does not return it.
var ErrAddressExhausted = errors.New("xlate: address space exhausted")
