package gaadapter

import (
	"github.com/gangstatracer/netwlgen/internal/flow"
	"github.com/gangstatracer/netwlgen/internal/xlate"
)

// Evaluate is the default fitness function (spec.md §6 "evaluator(genome) ->
// float"): build an address translator from the genome's net/node tables,
// generate every flow's packet sequence starting at t=0, and return the
// total packet count as the fitness value.
//
// Grounded on original_source/genetic_engine.py's
// network_packets_count_tester, minus the pcap/text dump side effects
// (spec.md §1 non-goal: "pcap file writing ... file persistence").
func (ind *Individual) Evaluate() (float64, error) {
	tr, err := xlate.New(ind.Genome.Nets, ind.Genome.Nodes)
	if err != nil {
		return 0, err
	}

	var total int
	for _, f := range ind.Genome.Flows {
		packets, err := f.Generate(tr, 0)
		if err != nil {
			return 0, err
		}
		total += len(packets)
	}

	return float64(total), nil
}

// Packets generates and returns the concatenated packet sequences of every
// flow in the genome, for callers that want the raw output rather than just
// its count (spec.md §6 "Produced for fitness functions"). Packets are
// grouped by flow in genome order and each flow's own sequence is
// time-monotonic; merging/sorting across flows is left to the caller
// (spec.md §5 "Ordering").
func (ind *Individual) Packets() ([]flow.Packet, error) {
	tr, err := xlate.New(ind.Genome.Nets, ind.Genome.Nodes)
	if err != nil {
		return nil, err
	}

	var all []flow.Packet
	for _, f := range ind.Genome.Flows {
		packets, err := f.Generate(tr, 0)
		if err != nil {
			return nil, err
		}
		all = append(all, packets...)
	}
	return all, nil
}
