package genome

import (
	"math/rand"

	"github.com/gangstatracer/netwlgen/internal/flow"
	"github.com/gangstatracer/netwlgen/internal/xlate"
)

// parentFlag marks which parent's node/net tables a crossed-over flow's
// indices should be resolved against (original_source/genetic_engine.py's
// translate_nodes_and_nets lambda_flag: 's' / 'b').
type parentFlag int

const (
	flagSister parentFlag = iota
	flagBrother
)

// Crossover performs one-point crossover at a flow-list boundary (spec.md
// §4.5 "Crossover"), producing two offspring whose net/node tables are
// rebuilt by index repair so every flow keeps referencing a valid node
// (spec.md §4.5's "index repair").
//
// Grounded on original_source/genetic_engine.py's network_crossover and
// translate_nodes_and_nets. Unlike the original, each offspring's spliced-in
// flows are cloned rather than shared by reference between sister and
// brother: the original's model.py carries a "TODO: потенциальная проблема
// копирования ссылок вместо создания новых объектов" (reference-copying,
// not object-creation) acknowledging this as a known defect; cloning here
// removes the defect and keeps the two returned genomes fully independent
// (see DESIGN.md).
func Crossover(mom, dad *Genome) (*Genome, *Genome, error) {
	if len(mom.Flows) == 0 || len(dad.Flows) == 0 {
		return nil, nil, ErrCrossoverLen
	}

	sister := mom.Clone()
	brother := dad.Clone()

	if rand.Intn(2) == 0 {
		sister.FFlow, brother.FFlow = brother.FFlow, sister.FFlow
	}
	if rand.Intn(2) == 0 {
		sister.Texp, brother.Texp = brother.Texp, sister.Texp
	}

	maxCross := len(mom.Flows) - 1
	if len(dad.Flows)-1 < maxCross {
		maxCross = len(dad.Flows) - 1
	}
	cross := rand.Intn(maxCross + 1)

	// Read mom/dad's original (pre-crossover) tables throughout — sister and
	// brother are built from the same two splits, so neither construction
	// may observe the other's already-reassigned fields.
	momNets, momNodes := mom.Nets, mom.Nodes
	dadNets, dadNodes := dad.Nets, dad.Nodes

	sFlows := append(cloneFlows(mom.Flows[:cross]), cloneFlows(dad.Flows[cross:])...)
	sNets, sNodes := translateNodesAndNets(sFlows, momNodes, dadNodes, momNets, dadNets,
		func(i int) parentFlag {
			if i < cross {
				return flagSister
			}
			return flagBrother
		})

	bFlows := append(cloneFlows(dad.Flows[:cross]), cloneFlows(mom.Flows[cross:])...)
	bNets, bNodes := translateNodesAndNets(bFlows, momNodes, dadNodes, momNets, dadNets,
		func(i int) parentFlag {
			if i < cross {
				return flagBrother
			}
			return flagSister
		})

	sister.Nets, sister.Nodes, sister.Flows = sNets, sNodes, sFlows
	brother.Nets, brother.Nodes, brother.Flows = bNets, bNodes, bFlows

	if err := sister.Validate(); err != nil {
		return nil, nil, err
	}
	if err := brother.Validate(); err != nil {
		return nil, nil, err
	}

	return sister, brother, nil
}

func cloneFlows(fs []flow.Flow) []flow.Flow {
	out := make([]flow.Flow, len(fs))
	for i, f := range fs {
		out[i] = f.Clone()
	}
	return out
}

// translateNodesAndNets rebuilds a compact (nets, nodes) table for flows
// whose node1/node2 currently index into either parent's original tables
// (selected per-flow by flagFor), renumbering node and net references so
// the new tables hold exactly what the flow list needs and nothing else
// (spec.md §4.5 "index repair";
// original_source/genetic_engine.py's translate_nodes_and_nets).
func translateNodesAndNets(flows []flow.Flow, sisterNodes, brotherNodes []int, sisterNets, brotherNets []xlate.Net, flagFor func(i int) parentFlag) ([]xlate.Net, []int) {
	type nodeKey struct {
		idx  int
		flag parentFlag
	}
	var nodeDict []nodeKey
	indexOfNode := func(k nodeKey) int {
		for i, e := range nodeDict {
			if e == k {
				return i
			}
		}
		return -1
	}

	for i, f := range flows {
		flag := flagFor(i)

		k1 := nodeKey{f.Node1(), flag}
		idx1 := indexOfNode(k1)
		if idx1 < 0 {
			nodeDict = append(nodeDict, k1)
			idx1 = len(nodeDict) - 1
		}

		k2 := nodeKey{f.Node2(), flag}
		idx2 := indexOfNode(k2)
		if idx2 < 0 {
			nodeDict = append(nodeDict, k2)
			idx2 = len(nodeDict) - 1
		}

		f.SetNodes(idx1, idx2)
	}

	type netKey struct {
		idx  int
		flag parentFlag
	}
	var netDict []netKey
	indexOfNet := func(k netKey) int {
		for i, e := range netDict {
			if e == k {
				return i
			}
		}
		return -1
	}

	var nets []xlate.Net
	var nodes []int
	for _, nk := range nodeDict {
		nodeTable, netTable := sisterNodes, sisterNets
		if nk.flag == flagBrother {
			nodeTable, netTable = brotherNodes, brotherNets
		}

		oldNetIdx := nodeTable[nk.idx]
		ek := netKey{oldNetIdx, nk.flag}
		ei := indexOfNet(ek)
		if ei < 0 {
			netDict = append(netDict, ek)
			nets = append(nets, netTable[oldNetIdx])
			ei = len(netDict) - 1
		}
		nodes = append(nodes, ei)
	}

	return nets, nodes
}
