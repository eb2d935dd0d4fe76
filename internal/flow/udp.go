package flow

import (
	"math/rand"

	"github.com/gangstatracer/netwlgen/internal/fx"
	"github.com/gangstatracer/netwlgen/internal/xlate"
	"github.com/google/gopacket/layers"
)

// FlowUDP is a bidirectional UDP flow (spec.md §3 FlowSock/FlowUDP).
type FlowUDP struct {
	base
	port1, port2 uint16
}

// NewFlowUDP constructs a UDP flow with the same argument order as
// NewFlowTCP.
func NewFlowUDP(port1, port2 uint16, node1, node2 int, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf *fx.FX) *FlowUDP {
	return &FlowUDP{
		base:  newBase(node1, node2, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf),
		port1: port1, port2: port2,
	}
}

func (f *FlowUDP) FXs() []*fx.FX { return f.fxs() }

func (f *FlowUDP) Clone() Flow {
	return &FlowUDP{base: f.cloneBase(), port1: f.port1, port2: f.port2}
}

func (f *FlowUDP) Mutation() error {
	return f.mutateOneOf(2, func(i int) error {
		if i == 0 {
			f.port1 = uint16(rand.Intn(65536))
		} else {
			f.port2 = uint16(rand.Intn(65536))
		}
		return nil
	})
}

// Generate emits packets until t >= t_end, picking a direction each
// iteration via fhf.random() (spec.md §4.3.2).
func (f *FlowUDP) Generate(tr *xlate.Translator, t0 float64) ([]Packet, error) {
	tEnd, err := endTime(f.ftf, t0)
	if err != nil {
		return nil, err
	}

	ip1, ip2 := tr.Node2IP[f.node1], tr.Node2IP[f.node2]

	var packets []Packet
	t := t0

	for t < tEnd {
		dir, err := pickDirection(f.fhf)
		if err != nil {
			return nil, err
		}

		_, flp, fttl := f.directionFX(dir)
		length, err := flp.RandomInt()
		if err != nil {
			return nil, err
		}
		ttl, err := fttl.RandomInt()
		if err != nil {
			return nil, err
		}
		payload := l5Payload(length)

		var srcIP, dstIP string
		var sport, dport uint16
		if dir == 1 {
			srcIP, dstIP = ip1, ip2
			sport, dport = f.port1, f.port2
		} else {
			srcIP, dstIP = ip2, ip1
			sport, dport = f.port2, f.port1
		}

		ip := ipLayer(srcIP, dstIP, uint8(ttl), layers.IPProtocolUDP)
		udp := &layers.UDP{SrcPort: layers.UDPPort(sport), DstPort: layers.UDPPort(dport)}
		raw, err := serializeUDP(ip, udp, payload)
		if err != nil {
			return nil, err
		}

		packets = append(packets, Packet{
			Time:    t,
			SrcIP:   srcIP,
			DstIP:   dstIP,
			TTL:     uint8(ttl),
			Payload: payload,
			UDP:     &UDPInfo{SPort: sport, DPort: dport},
			Raw:     raw,
		})

		ftp, _, _ := f.directionFX(dir)
		dt, err := ftp.Random()
		if err != nil {
			return nil, err
		}
		t += dt
	}

	return packets, nil
}
