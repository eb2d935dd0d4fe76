package xlate

import (
	"fmt"
	"net/netip"
)

// classRange is one entry of the legacy class table (original_source's
// nets_manager.py cls_ranges): a base address plus how many trailing bytes
// of the 32-bit address are available for per-network and per-host
// counters.
type classRange struct {
	base      uint32
	nodeBytes int
}

// ClassRanges is the legacy network-class table (spec.md §4.4 "Legacy
// class-based form"). Kept only for the literal Translator.uniqueness /
// Translator.side scenarios (spec.md §8 item 4), which originally targeted
// this representation; the canonical translator is mask-based (New, in
// mask.go).
var ClassRanges = map[string]classRange{
	"a": {base: 0x0A000000, nodeBytes: 3}, // 10.0.0.0/8
	"b": {base: 0xAC100000, nodeBytes: 2}, // 172.16.0.0, /16-style block
	"c": {base: 0xC0A80000, nodeBytes: 2}, // 192.168.0.0
	"d": {base: 0xC0A90000, nodeBytes: 2},
	"e": {base: 0xC0AA0000, nodeBytes: 2},
	"l": {base: 0x0B000000, nodeBytes: 3},
	"m": {base: 0x0C000000, nodeBytes: 3},
	"z": {base: 0x0D000000, nodeBytes: 3},
}

// LegacyNet is a class-based network descriptor: Class must be a key of
// ClassRanges, Side marks observation position.
type LegacyNet struct {
	Class string
	Side  Side
}

// NewLegacy builds a Translator using the legacy class-table algorithm:
// each network gets a base address offset by a per-class counter shifted by
// its class's node-byte width; each node's host address increments a
// per-network counter, skipping host byte values 0x00 and 0xff (spec.md
// §4.4).
func NewLegacy(nets []LegacyNet, nodes []int) (*Translator, error) {
	for _, n := range nets {
		if _, ok := ClassRanges[n.Class]; !ok {
			return nil, fmt.Errorf("%w: unknown network class %q", ErrInvalidDomain, n.Class)
		}
	}
	for _, n := range nodes {
		if n < 0 || n >= len(nets) {
			return nil, fmt.Errorf("%w: node references net %d, have %d nets", ErrInvalidIndex, n, len(nets))
		}
	}

	classCounters := map[string]uint32{}
	netAddrs := make([]uint32, len(nets))
	nodeCounts := make([]uint32, len(nets))

	for i, n := range nets {
		cr := ClassRanges[n.Class]
		netAddrs[i] = cr.base + (classCounters[n.Class] << uint(8*cr.nodeBytes))
		classCounters[n.Class]++
	}

	t := &Translator{
		Node2IP:  make([]string, len(nodes)),
		Node2Pos: make([]Side, len(nodes)),
		IP2Pos:   map[string]Side{},
	}

	for j, netIdx := range nodes {
		nodeCounts[netIdx]++
		for nodeCounts[netIdx]&0xff == 0xff || nodeCounts[netIdx]&0xff == 0x00 {
			nodeCounts[netIdx]++
		}

		addrInt := netAddrs[netIdx] + nodeCounts[netIdx]
		addr := netip.AddrFrom4(u32ToBytes(addrInt))

		side := nets[netIdx].Side
		ipStr := addr.String()
		t.Node2IP[j] = ipStr
		t.Node2Pos[j] = side
		t.IP2Pos[ipStr] = side
	}

	return t, nil
}
