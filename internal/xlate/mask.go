// Package xlate maps Genome node indices to unique IPv4 addresses (spec.md
// §4.4, the "Address translator"). Net is the mask-based canonical form;
// legacy.go ports the class-based form as historical reference only (spec.md
// marks mask-based as canonical and class-based as legacy-to-discard).
//
// The allocation bookkeeping (a per-key "next free slot" counter guarded
// against exhaustion) follows the shape of minimega's src/vlans
// AllocatedVLANs allocator; every allocated subnet and host address is
// additionally recorded in a github.com/gaissmai/bart routing table, and an
// exact repeat of either is reported as an error instead of two hosts
// silently sharing an address. The subnet check matches exact prefixes
// only: subnets of different mask lengths that overlap are not detected
// there, and surface only if two of their hosts get the same address.
package xlate

import (
	"fmt"
	"net/netip"

	"github.com/gaissmai/bart"
	"github.com/gangstatracer/netwlgen/internal/mlog"
)

// Side marks which of two observation points a network (and the hosts in
// it) sits at (spec.md's GLOSSARY "Side (l/r)").
type Side int

const (
	SideL Side = iota
	SideR
)

func (s Side) String() string {
	if s == SideL {
		return "l"
	}
	return "r"
}

// Net is a mask-based network descriptor: mask_bits in [1,31], allocating
// subnets from the high or low half of the IPv4 space depending on Side
// (spec.md §3 "Network descriptor").
type Net struct {
	MaskBits int
	Side     Side
}

// Translator maps node indices to dotted-quad IPv4 addresses, node
// positions, and an IP->Side lookup (spec.md §4.4).
type Translator struct {
	Node2IP  []string
	Node2Pos []Side
	IP2Pos   map[string]Side
}

// New builds a Translator for the given networks and the node->network
// index table, using the mask-based allocation algorithm of spec.md §4.4:
//
//  1. Each network is assigned a /MaskBits subnet: one shared counter per
//     mask value (not per side) selects the block, and the top bit of the
//     32-bit address is fixed by Side. A mask value is exhausted once its
//     counter would exceed 2^(mask-1) allocable blocks.
//  2. Each node is assigned the next unused host address within its
//     network's subnet, skipping nothing (the 0x00/0xff host-byte skip is a
//     legacy.go-only rule); a network is exhausted once its host counter
//     would exceed 2^(32-mask)-1.
func New(nets []Net, nodes []int) (*Translator, error) {
	log := mlog.Component("xlate")

	for _, n := range nets {
		if n.MaskBits < 1 || n.MaskBits > 31 {
			return nil, fmt.Errorf("%w: mask_bits %d not in [1,31]", ErrInvalidDomain, n.MaskBits)
		}
	}
	for _, n := range nodes {
		if n < 0 || n >= len(nets) {
			return nil, fmt.Errorf("%w: node references net %d, have %d nets", ErrInvalidIndex, n, len(nets))
		}
	}

	maskCounters := map[int]uint32{}
	netBase := make([]uint32, len(nets))
	netTable := &bart.Table[struct{}]{}

	for i, n := range nets {
		limit := uint32(1) << uint(n.MaskBits-1)
		counter := maskCounters[n.MaskBits]
		if counter >= limit {
			return nil, fmt.Errorf("%w: mask /%d exhausted (limit %d subnets)", ErrAddressExhausted, n.MaskBits, limit)
		}
		maskCounters[n.MaskBits] = counter + 1

		base := counter << uint(32-n.MaskBits)
		if n.Side == SideR {
			base |= 1 << 31
		}
		netBase[i] = base

		addr := netip.AddrFrom4(u32ToBytes(base))
		prefix := netip.PrefixFrom(addr, n.MaskBits)
		if _, ok := netTable.Get(prefix); ok {
			return nil, fmt.Errorf("%w: subnet %s collides with an earlier allocation", ErrAddressExhausted, prefix)
		}
		netTable.Insert(prefix, struct{}{})
	}

	nodeCounts := make([]uint32, len(nets))
	hostTable := &bart.Table[struct{}]{}

	t := &Translator{
		Node2IP:  make([]string, len(nodes)),
		Node2Pos: make([]Side, len(nodes)),
		IP2Pos:   map[string]Side{},
	}

	for j, netIdx := range nodes {
		mask := nets[netIdx].MaskBits
		hostLimit := (uint32(1) << uint(32-mask)) - 1

		nodeCounts[netIdx]++
		if nodeCounts[netIdx] > hostLimit {
			return nil, fmt.Errorf("%w: network %d (/%d) cannot hold another host", ErrAddressExhausted, netIdx, mask)
		}

		hostAddr := netBase[netIdx] | nodeCounts[netIdx]
		addr := netip.AddrFrom4(u32ToBytes(hostAddr))
		hostPrefix := netip.PrefixFrom(addr, 32)
		if _, ok := hostTable.Get(hostPrefix); ok {
			log.Warn().Str("ip", addr.String()).Msg("duplicate host address assigned")
			return nil, fmt.Errorf("%w: host address %s already assigned", ErrAddressExhausted, addr)
		}
		hostTable.Insert(hostPrefix, struct{}{})

		side := nets[netIdx].Side
		ipStr := addr.String()
		t.Node2IP[j] = ipStr
		t.Node2Pos[j] = side
		t.IP2Pos[ipStr] = side
	}

	return t, nil
}

func u32ToBytes(v uint32) [4]byte {
	return [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
