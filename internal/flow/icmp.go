package flow

import (
	"fmt"
	"math/rand"

	"github.com/gangstatracer/netwlgen/internal/fx"
	"github.com/gangstatracer/netwlgen/internal/xlate"
	"github.com/google/gopacket/layers"
)

// FlowICMP is a bidirectional ICMP flow (spec.md §3 FlowICMP): type1/type2
// replace the port pair of the Sock-based flows.
type FlowICMP struct {
	base
	type1, type2 int
}

// NewFlowICMP constructs an ICMP flow. type1/type2 must be in [0,40]
// (spec.md §3).
func NewFlowICMP(type1, type2 int, node1, node2 int, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf *fx.FX) (*FlowICMP, error) {
	if type1 < 0 || type1 > 40 || type2 < 0 || type2 > 40 {
		return nil, fmt.Errorf("%w: icmp type must be in [0,40], got %d/%d", ErrInvalidDomain, type1, type2)
	}
	return &FlowICMP{
		base:  newBase(node1, node2, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf),
		type1: type1, type2: type2,
	}, nil
}

func (f *FlowICMP) FXs() []*fx.FX { return f.fxs() }

func (f *FlowICMP) Clone() Flow {
	return &FlowICMP{base: f.cloneBase(), type1: f.type1, type2: f.type2}
}

func (f *FlowICMP) Mutation() error {
	return f.mutateOneOf(2, func(i int) error {
		v := rand.Intn(41)
		if i == 0 {
			f.type1 = v
		} else {
			f.type2 = v
		}
		return nil
	})
}

// Generate is structurally identical to FlowUDP.Generate (direction picked
// per-iteration via fhf), but additionally tracks a monotonic ICMP sequence
// number for direction 1 and mirrors it as the "ack" of direction 2
// (spec.md §4.3.3).
func (f *FlowICMP) Generate(tr *xlate.Translator, t0 float64) ([]Packet, error) {
	tEnd, err := endTime(f.ftf, t0)
	if err != nil {
		return nil, err
	}

	ip1, ip2 := tr.Node2IP[f.node1], tr.Node2IP[f.node2]

	var packets []Packet
	t := t0
	var seq uint32
	var lastAck uint32

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
		var icmpType int
		var info ICMPInfo
		if dir == 1 {
			srcIP, dstIP = ip1, ip2
			icmpType = f.type1
			info.Seq = seq
			info.Ack = seq
			lastAck = seq
			seq++
		} else {
			srcIP, dstIP = ip2, ip1
			icmpType = f.type2
			info.Ack = lastAck
		}
		info.Type = icmpType

		ip := ipLayer(srcIP, dstIP, uint8(ttl), layers.IPProtocolICMPv4)
		icmp := &layers.ICMPv4{
			TypeCode: layers.CreateICMPv4TypeCode(uint8(icmpType), 0),
			Seq:      uint16(info.Seq),
		}
		raw, err := serializeICMP(ip, icmp, payload)
		if err != nil {
			return nil, err
		}

		packets = append(packets, Packet{
			Time:    t,
			SrcIP:   srcIP,
			DstIP:   dstIP,
			TTL:     uint8(ttl),
			Payload: payload,
			ICMP:    &info,
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
