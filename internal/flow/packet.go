package flow

import (
	"fmt"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// TCPInfo carries the TCP-specific fields of a generated packet, exposed
// directly (rather than only through Raw) so fitness functions and tests
// can inspect flags/seq/ack without re-parsing the wire bytes.
type TCPInfo struct {
	SPort, DPort       uint16
	Seq, Ack           uint32
	SYN, ACK, FIN, RST bool
}

// UDPInfo carries the UDP-specific fields of a generated packet.
type UDPInfo struct {
	SPort, DPort uint16
}

// ICMPInfo carries the ICMPv4-specific fields of a generated packet.
type ICMPInfo struct {
	Type     int
	Seq, Ack uint32
}

// Packet is one emitted unit of a flow's generated traffic (spec.md §6
// "Produced for fitness functions"). Time is strictly monotonic within a
// single flow's Packet slice (spec.md §5).
type Packet struct {
	Time    float64
	SrcIP   string
	DstIP   string
	TTL     uint8
	Payload []byte

	TCP  *TCPInfo
	UDP  *UDPInfo
	ICMP *ICMPInfo

	// Raw is the fully serialized IPv4+L4+payload wire image, built with
	// gopacket so checksums and lengths are correct.
	Raw []byte
}

// l5Payload returns length bytes of the 'A' ASCII payload (spec.md §4.3
// "generate_l5").
func l5Payload(length int) []byte {
	if length < 0 {
		length = 0
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = 'A'
	}
	return b
}

func ipLayer(srcIP, dstIP string, ttl uint8, proto layers.IPProtocol) *layers.IPv4 {
	return &layers.IPv4{
		Version:  4,
		TTL:      ttl,
		SrcIP:    mustParseIP(srcIP),
		DstIP:    mustParseIP(dstIP),
		Protocol: proto,
	}
}

func mustParseIP(s string) []byte {
	// Translator always emits dotted-quad IPv4 strings; a parse failure here
	// means a prior layer is corrupted, not a recoverable input error.
	ip := parseIPv4(s)
	if ip == nil {
		panic(fmt.Sprintf("flow: invalid IPv4 address %q from translator", s))
	}
	return ip
}

func parseIPv4(s string) []byte {
	var a, b, c, d int
	if n, err := fmt.Sscanf(s, "%d.%d.%d.%d", &a, &b, &c, &d); err != nil || n != 4 {
		return nil
	}
	return []byte{byte(a), byte(b), byte(c), byte(d)}
}

func serializeTCP(ip *layers.IPv4, tcp *layers.TCP, payload []byte) ([]byte, error) {
	tcp.SetNetworkLayerForChecksum(ip)

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, ip, tcp, gopacket.Payload(payload)); err != nil {
		return nil, fmt.Errorf("flow: serialize tcp packet: %w", err)
	}
	return buf.Bytes(), nil
}

func serializeUDP(ip *layers.IPv4, udp *layers.UDP, payload []byte) ([]byte, error) {
	udp.SetNetworkLayerForChecksum(ip)

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, ip, udp, gopacket.Payload(payload)); err != nil {
		return nil, fmt.Errorf("flow: serialize udp packet: %w", err)
	}
	return buf.Bytes(), nil
}

func serializeICMP(ip *layers.IPv4, icmp *layers.ICMPv4, payload []byte) ([]byte, error) {
	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{ComputeChecksums: true, FixLengths: true}
	if err := gopacket.SerializeLayers(buf, opts, ip, icmp, gopacket.Payload(payload)); err != nil {
		return nil, fmt.Errorf("flow: serialize icmp packet: %w", err)
	}
	return buf.Bytes(), nil
}
