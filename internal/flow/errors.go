package flow

import "errors"

// ErrInvalidDomain is returned by NewFlowICMP when an ICMP type falls
// outside [0,40] (spec.md §3). Ports need no check (uint16 covers their
// whole range) and referenced FXs are not re-validated here.
var ErrInvalidDomain = errors.New("flow: value outside declared domain")
