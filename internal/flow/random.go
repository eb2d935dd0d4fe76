package flow

import (
	"math/rand"

	"github.com/gangstatracer/netwlgen/internal/fx"
)

// freshBundle builds one freshly-randomized (ftp, flp, fttl) triple, for use
// by both directions of a newly generated flow.
func freshBundle() (ftp, flp, fttl *fx.FX, err error) {
	ftp, err = fx.EmptyFTP()
	if err != nil {
		return nil, nil, nil, err
	}
	if err = ftp.RandomInitialize(); err != nil {
		return nil, nil, nil, err
	}

	flp, err = fx.EmptyFLP()
	if err != nil {
		return nil, nil, nil, err
	}
	if err = flp.RandomInitialize(); err != nil {
		return nil, nil, nil, err
	}

	fttl, err = fx.EmptyFTTL()
	if err != nil {
		return nil, nil, nil, err
	}
	if err = fttl.RandomInitialize(); err != nil {
		return nil, nil, nil, err
	}

	return ftp, flp, fttl, nil
}

// Random builds a freshly randomized flow of a uniformly chosen kind
// (TCP/UDP/ICMP) between node1 and node2 (spec.md §4.5 "Initializer":
// "each a fresh random flow ... type chosen uniformly among TCP/UDP/ICMP"),
// grounded on original_source/genetic_engine.py's random_flow.
func Random(node1, node2 int) (Flow, error) {
	ftp1, flp1, fttl1, err := freshBundle()
	if err != nil {
		return nil, err
	}
	ftp2, flp2, fttl2, err := freshBundle()
	if err != nil {
		return nil, err
	}

	ftf, err := fx.EmptyFTF()
	if err != nil {
		return nil, err
	}
	if err := ftf.RandomInitialize(); err != nil {
		return nil, err
	}

	fhf, err := fx.EmptyFHF()
	if err != nil {
		return nil, err
	}
	if err := fhf.RandomInitialize(); err != nil {
		return nil, err
	}

	switch rand.Intn(3) {
	case 0:
		port1 := uint16(rand.Intn(65536))
		port2 := uint16(rand.Intn(65536))
		return NewFlowTCP(port1, port2, node1, node2, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf), nil
	case 1:
		port1 := uint16(rand.Intn(65536))
		port2 := uint16(rand.Intn(65536))
		return NewFlowUDP(port1, port2, node1, node2, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf), nil
	default:
		type1 := rand.Intn(41)
		type2 := rand.Intn(41)
		return NewFlowICMP(type1, type2, node1, node2, ftp1, flp1, fttl1, ftp2, flp2, fttl2, ftf, fhf)
	}
}
