package flow

import (
	"testing"

	"github.com/gangstatracer/netwlgen/internal/fx"
	"github.com/gangstatracer/netwlgen/internal/xlate"
)

// fixedFXSet builds the shared FX set used in spec.md §8's literal
// scenarios 1-3: deterministic inter-packet time, payload length, TTL and
// flow duration so packet counts land in a predictable range.
func fixedFXSet(t *testing.T) (ftp, flp, fttl, ftf *fx.FX) {
	t.Helper()

	var err error
	ftp, err = fx.NewFTP([]fx.Point{{P: 1.0, V: 0.1}})
	if err != nil {
		t.Fatal(err)
	}
	flp, err = fx.NewFLP([]fx.Point{{P: 1.0, V: 100}})
	if err != nil {
		t.Fatal(err)
	}
	fttl, err = fx.NewFTTL([]fx.Point{{P: 1.0, V: 1}})
	if err != nil {
		t.Fatal(err)
	}
	ftf, err = fx.NewFTF([]fx.Point{{P: 1.0, V: 100}})
	if err != nil {
		t.Fatal(err)
	}
	return
}

func fixedTranslator(t *testing.T) *xlate.Translator {
	t.Helper()
	tr, err := xlate.New([]xlate.Net{{MaskBits: 24, Side: xlate.SideL}, {MaskBits: 24, Side: xlate.SideR}}, []int{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

// TestFlowUDPCount is spec.md §8 scenario 1.
func TestFlowUDPCount(t *testing.T) {
	ftp, flp, fttl, ftf := fixedFXSet(t)
	fhf, err := fx.NewFHF([]fx.Point{{P: 0.5, V: 1}})
	if err != nil {
		t.Fatal(err)
	}

	f := NewFlowUDP(9999, 42, 0, 1, ftp.Clone(), flp.Clone(), fttl.Clone(), ftp.Clone(), flp.Clone(), fttl.Clone(), ftf.Clone(), fhf)

	packs, err := f.Generate(fixedTranslator(t), 42.0)
	if err != nil {
		t.Fatal(err)
	}

	if len(packs) <= 950 || len(packs) >= 1050 {
		t.Fatalf("expected packet count in (950,1050), got %d", len(packs))
	}
	if packs[0].UDP.SPort != 9999 || packs[0].UDP.DPort != 42 {
		t.Fatalf("expected sport=9999 dport=42, got sport=%d dport=%d", packs[0].UDP.SPort, packs[0].UDP.DPort)
	}
}

// TestFlowTCPHandshake is spec.md §8 scenario 2.
func TestFlowTCPHandshake(t *testing.T) {
	ftp, flp, fttl, ftf := fixedFXSet(t)
	fhf, err := fx.NewFHF([]fx.Point{{P: 0.5, V: 1}})
	if err != nil {
		t.Fatal(err)
	}

	f := NewFlowTCP(9999, 42, 0, 1, ftp.Clone(), flp.Clone(), fttl.Clone(), ftp.Clone(), flp.Clone(), fttl.Clone(), ftf.Clone(), fhf)

	packs, err := f.Generate(fixedTranslator(t), 42.0)
	if err != nil {
		t.Fatal(err)
	}

	if len(packs) <= 950 || len(packs) >= 1050 {
		t.Fatalf("expected packet count in (950,1050), got %d", len(packs))
	}

	if packs[0].TCP.SPort != 9999 || packs[1].TCP.SPort != 42 || packs[2].TCP.SPort != 9999 {
		t.Fatalf("expected sport sequence (9999,42,9999), got (%d,%d,%d)",
			packs[0].TCP.SPort, packs[1].TCP.SPort, packs[2].TCP.SPort)
	}

	if !packs[0].TCP.SYN || packs[0].TCP.ACK || packs[0].TCP.FIN || packs[0].TCP.RST {
		t.Fatalf("packet 0 should have only SYN set, got %+v", packs[0].TCP)
	}
	if !packs[1].TCP.SYN || !packs[1].TCP.ACK || packs[1].TCP.FIN || packs[1].TCP.RST {
		t.Fatalf("packet 1 should have SYN+ACK set, got %+v", packs[1].TCP)
	}
	if packs[2].TCP.SYN || !packs[2].TCP.ACK || packs[2].TCP.FIN || packs[2].TCP.RST {
		t.Fatalf("packet 2 should have only ACK set, got %+v", packs[2].TCP)
	}
}

// TestFlowICMPMonotonicSeq is spec.md §8 scenario 3.
func TestFlowICMPMonotonicSeq(t *testing.T) {
	ftp, flp, fttl, ftf := fixedFXSet(t)
	fhf, err := fx.NewFHF([]fx.Point{{P: 0.3, V: 0}, {P: 1.0, V: 1}})
	if err != nil {
		t.Fatal(err)
	}

	f, err := NewFlowICMP(0, 8, 0, 1, ftp.Clone(), flp.Clone(), fttl.Clone(), ftp.Clone(), flp.Clone(), fttl.Clone(), ftf.Clone(), fhf)
	if err != nil {
		t.Fatal(err)
	}

	packs, err := f.Generate(fixedTranslator(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(packs) == 0 {
		t.Fatal("expected at least one packet")
	}

	var lastSeq uint32
	var sawDir1 bool
	for _, p := range packs {
		if p.ICMP.Type == 0 {
			if sawDir1 && p.ICMP.Seq <= lastSeq {
				t.Fatalf("expected strictly increasing seq, got %d after %d", p.ICMP.Seq, lastSeq)
			}
			lastSeq = p.ICMP.Seq
			sawDir1 = true
		} else {
			if sawDir1 && p.ICMP.Ack != lastSeq {
				t.Fatalf("expected ack %d to equal last direction-1 seq, got %d", lastSeq, p.ICMP.Ack)
			}
		}
	}
}

func TestFlowTCPCloneMutationLeavesOriginal(t *testing.T) {
	ftp, flp, fttl, ftf := fixedFXSet(t)
	fhf, err := fx.NewFHF([]fx.Point{{P: 1.0, V: 0}})
	if err != nil {
		t.Fatal(err)
	}

	f := NewFlowTCP(1, 2, 0, 1, ftp.Clone(), flp.Clone(), fttl.Clone(), ftp.Clone(), flp.Clone(), fttl.Clone(), ftf.Clone(), fhf)
	clone := f.Clone().(*FlowTCP)

	if err := clone.Mutation(); err != nil {
		t.Fatal(err)
	}

	// Cloning must be independent: mutating the clone must never affect the
	// original (spec.md §8 Clone-independence).
	if f.port1 != 1 || f.port2 != 2 {
		t.Fatal("mutation of clone leaked into original")
	}
	want := []fx.Point{{P: 1.0, V: 0.1}, {P: 1.0, V: 100}, {P: 1.0, V: 1}, {P: 1.0, V: 0.1}, {P: 1.0, V: 100}, {P: 1.0, V: 1}, {P: 1.0, V: 100}, {P: 1.0, V: 0}}
	for i, x := range f.FXs() {
		if len(x.Points) != 1 || x.Points[0] != want[i] {
			t.Fatalf("mutation of clone leaked into original FX %d: %v", i, x.Points)
		}
	}
}
