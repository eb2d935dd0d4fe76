package xlate

import (
	"strings"
	"testing"
)

// TestNewMaskBasic is spec.md §8 scenario 4, adapted to the mask-based form:
// two single-host networks, one per side.
func TestNewMaskBasic(t *testing.T) {
	nets := []Net{{MaskBits: 24, Side: SideL}, {MaskBits: 24, Side: SideR}}
	nodes := []int{0, 1}

	tr, err := New(nets, nodes)
	if err != nil {
		t.Fatal(err)
	}

	if len(strings.Split(tr.Node2IP[0], ".")) != 4 {
		t.Fatalf("expected dotted quad, got %v", tr.Node2IP[0])
	}
	if tr.Node2Pos[1] != SideR {
		t.Fatalf("expected node 1 side r, got %v", tr.Node2Pos[1])
	}
	if tr.IP2Pos[tr.Node2IP[0]] != SideL {
		t.Fatalf("expected node 0's ip to map to side l")
	}
}

func TestNewMaskRejectsInvalidBits(t *testing.T) {
	if _, err := New([]Net{{MaskBits: 0, Side: SideL}}, nil); err == nil {
		t.Fatal("expected error for mask_bits 0")
	}
	if _, err := New([]Net{{MaskBits: 32, Side: SideL}}, nil); err == nil {
		t.Fatal("expected error for mask_bits 32")
	}
}

func TestNewMaskRejectsInvalidNodeIndex(t *testing.T) {
	nets := []Net{{MaskBits: 24, Side: SideL}}
	if _, err := New(nets, []int{0, 1}); err == nil {
		t.Fatal("expected error: node 1 references nonexistent net 1")
	}
}

func TestNewMaskHostExhaustion(t *testing.T) {
	nets := []Net{{MaskBits: 31, Side: SideL}} // /31: only one usable host address
	nodes := []int{0, 0}

	if _, err := New(nets, nodes); err == nil {
		t.Fatal("expected address exhaustion for two hosts in a /31")
	}
}

func TestNewMaskUniqueAddresses(t *testing.T) {
	nets := []Net{{MaskBits: 20, Side: SideL}}
	nodes := make([]int, 50)

	tr, err := New(nets, nodes)
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for _, ip := range tr.Node2IP {
		if seen[ip] {
			t.Fatalf("duplicate ip assigned: %v", ip)
		}
		seen[ip] = true
	}
}

// TestNewLegacyIPGenerate is spec.md §8 scenario 4 against the legacy
// class-based translator, matching original_source's unit_tests.py
// test_ip_generate.
func TestNewLegacyIPGenerate(t *testing.T) {
	nets := []LegacyNet{{Class: "a", Side: SideL}, {Class: "b", Side: SideR}}
	nodes := []int{0, 1}

	tr, err := NewLegacy(nets, nodes)
	if err != nil {
		t.Fatal(err)
	}

	if len(strings.Split(tr.Node2IP[0], ".")) != 4 {
		t.Fatalf("expected dotted quad, got %v", tr.Node2IP[0])
	}
	if tr.Node2Pos[1] != SideR {
		t.Fatalf("expected node 1 side r")
	}
	if tr.IP2Pos[tr.Node2IP[0]] != SideL {
		t.Fatalf("expected node 0's ip to map to side l")
	}
}

// TestNewLegacySkipsReservedHostBytes is spec.md §8 Translator.uniqueness:
// no assigned address has a host byte of 0x00 or 0xff.
func TestNewLegacySkipsReservedHostBytes(t *testing.T) {
	nets := []LegacyNet{{Class: "c", Side: SideL}}
	nodes := make([]int, 300)

	tr, err := NewLegacy(nets, nodes)
	if err != nil {
		t.Fatal(err)
	}

	for _, ip := range tr.Node2IP {
		last := ip[strings.LastIndex(ip, ".")+1:]
		if last == "0" || last == "255" {
			t.Fatalf("host address %v uses a reserved host byte", ip)
		}
	}
}
