package flow

import (
	"math/rand"

	"github.com/gangstatracer/netwlgen/internal/fx"
	"github.com/gangstatracer/netwlgen/internal/xlate"
	"github.com/google/gopacket/layers"
)

// FlowTCP is a bidirectional TCP flow (spec.md §3 FlowSock/FlowTCP).
type FlowTCP struct {
	base
	port1, port2 uint16
}

// NewFlowTCP constructs a TCP flow. Argument order matches the Python
// original's positional constructor (original_source/model.py):
// port1, port2, node1, node2, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf.
func NewFlowTCP(port1, port2 uint16, node1, node2 int, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf *fx.FX) *FlowTCP {
	return &FlowTCP{
		base:  newBase(node1, node2, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf),
		port1: port1, port2: port2,
	}
}

func (f *FlowTCP) FXs() []*fx.FX { return f.fxs() }

func (f *FlowTCP) Clone() Flow {
	return &FlowTCP{base: f.cloneBase(), port1: f.port1, port2: f.port2}
}

// Mutation picks uniformly among the flow's 8 FXs and its 2 ports
// (spec.md §4.2).
func (f *FlowTCP) Mutation() error {
	return f.mutateOneOf(2, func(i int) error {
		if i == 0 {
			f.port1 = uint16(rand.Intn(65536))
		} else {
			f.port2 = uint16(rand.Intn(65536))
		}
		return nil
	})
}

// tcpState is one of the deterministic lifecycle states of spec.md §4.3.1's
// table: C (SYN) -> O1 (SYN+ACK) -> O2 (ACK) -> E* (data) -> F1 (FIN) ->
// F2 (FIN) -> Q.
type tcpState int

const (
	stateSYN tcpState = iota
	stateSYNACK
	stateACK
	stateData
	stateFin1
	stateFin2
	stateDone
)

// Generate expands the flow into its TCP connection lifecycle: handshake,
// bidirectional data exchange with a per-packet coin-flip direction, and
// symmetric FIN teardown (spec.md §4.3.1).
func (f *FlowTCP) Generate(tr *xlate.Translator, t0 float64) ([]Packet, error) {
	tEnd, err := endTime(f.ftf, t0)
	if err != nil {
		return nil, err
	}

	ip1, ip2 := tr.Node2IP[f.node1], tr.Node2IP[f.node2]

	ttl1, err := f.fttl1.RandomInt()
	if err != nil {
		return nil, err
	}
	ttl2, err := f.fttl2.RandomInt()
	if err != nil {
		return nil, err
	}

	seq1 := rand.Uint32()
	seq2 := rand.Uint32()

	var packets []Packet
	t := t0
	state := stateSYN

	pkt12 := func(tt float64, seq, ack uint32, syn, ack_, fin, rst bool, payload []byte) (Packet, error) {
		return f.tcpPacket(ip1, ip2, uint8(ttl1), tt, f.port1, f.port2, seq, ack, syn, ack_, fin, rst, payload)
	}
	pkt21 := func(tt float64, seq, ack uint32, syn, ack_, fin, rst bool, payload []byte) (Packet, error) {
		return f.tcpPacket(ip2, ip1, uint8(ttl2), tt, f.port2, f.port1, seq, ack, syn, ack_, fin, rst, payload)
	}

	for state != stateDone {
		switch state {
		case stateSYN:
			pkt, err := pkt12(t, seq1, 0, true, false, false, false, nil)
			if err != nil {
				return nil, err
			}
			packets = append(packets, pkt)
			seq1++
			dt, err := f.ftp1.Random()
			if err != nil {
				return nil, err
			}
			t += dt
			state = stateSYNACK

		case stateSYNACK:
			pkt, err := pkt21(t, seq2, seq1, true, true, false, false, nil)
			if err != nil {
				return nil, err
			}
			packets = append(packets, pkt)
			seq2++
			dt, err := f.ftp2.Random()
			if err != nil {
				return nil, err
			}
			t += dt
			state = stateACK

		case stateACK:
			pkt, err := pkt12(t, seq1, seq2, false, true, false, false, nil)
			if err != nil {
				return nil, err
			}
			packets = append(packets, pkt)
			dt, err := f.ftp1.Random()
			if err != nil {
				return nil, err
			}
			t += dt
			state = stateData

		case stateData:
			if t >= tEnd {
				state = stateFin1
				continue
			}

			dir := coinFlip()
			var pkt Packet
			var dt float64
			if dir == 1 {
				length, lerr := f.flp1.RandomInt()
				if lerr != nil {
					return nil, lerr
				}
				payload := l5Payload(length)
				pkt, err = pkt12(t, seq1, seq2, false, true, false, false, payload)
				if err != nil {
					return nil, err
				}
				seq1 += uint32(len(payload))
				dt, err = f.ftp1.Random()
				if err != nil {
					return nil, err
				}
			} else {
				length, lerr := f.flp2.RandomInt()
				if lerr != nil {
					return nil, lerr
				}
				payload := l5Payload(length)
				pkt, err = pkt21(t, seq2, seq1, false, true, false, false, payload)
				if err != nil {
					return nil, err
				}
				seq2 += uint32(len(payload))
				dt, err = f.ftp2.Random()
				if err != nil {
					return nil, err
				}
			}
			packets = append(packets, pkt)
			t += dt

		case stateFin1:
			length, lerr := f.flp2.RandomInt()
			if lerr != nil {
				return nil, lerr
			}
			payload := l5Payload(length)
			pkt, err := pkt21(t, seq2, seq1, false, true, true, false, payload)
			if err != nil {
				return nil, err
			}
			packets = append(packets, pkt)
			seq2 += uint32(len(payload))
			dt, err := f.ftp2.Random()
			if err != nil {
				return nil, err
			}
			t += dt
			state = stateFin2

		case stateFin2:
			length, lerr := f.flp1.RandomInt()
			if lerr != nil {
				return nil, lerr
			}
			payload := l5Payload(length)
			pkt, err := pkt12(t, seq1, seq2, false, true, true, false, payload)
			if err != nil {
				return nil, err
			}
			packets = append(packets, pkt)
			state = stateDone
		}
	}

	return packets, nil
}

func (f *FlowTCP) tcpPacket(srcIP, dstIP string, ttl uint8, t float64, sport, dport uint16, seq, ack uint32, syn, ackFlag, fin, rst bool, payload []byte) (Packet, error) {
	ip := ipLayer(srcIP, dstIP, ttl, layers.IPProtocolTCP)
	tcp := &layers.TCP{
		SrcPort: layers.TCPPort(sport),
		DstPort: layers.TCPPort(dport),
		Seq:     seq,
		Ack:     ack,
		SYN:     syn,
		ACK:     ackFlag,
		FIN:     fin,
		RST:     rst,
		Window:  8192,
	}

	raw, err := serializeTCP(ip, tcp, payload)
	if err != nil {
		return Packet{}, err
	}

	return Packet{
		Time:    t,
		SrcIP:   srcIP,
		DstIP:   dstIP,
		TTL:     ttl,
		Payload: payload,
		TCP: &TCPInfo{
			SPort: sport, DPort: dport,
			Seq: seq, Ack: ack,
			SYN: syn, ACK: ackFlag, FIN: fin, RST: rst,
		},
		Raw: raw,
	}, nil
}
