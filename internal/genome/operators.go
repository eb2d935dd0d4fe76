package genome

import (
	"math/rand"
	"sort"

	"github.com/gangstatracer/netwlgen/internal/flow"
	"github.com/gangstatracer/netwlgen/internal/fx"
	"github.com/gangstatracer/netwlgen/internal/xlate"
)

// Bounds on the random population Initialize draws from (spec.md §4.5
// "Initializer"), matching original_source/genetic_engine.py's
// network_initializer literals.
const (
	minNets, maxNets   = 1, 10
	minNodes, maxNodes = 1, 100
	minFlows, maxFlows = 1, 10
	maxTexp            = 100.0
)

func randomSide() xlate.Side {
	if rand.Intn(2) == 0 {
		return xlate.SideL
	}
	return xlate.SideR
}

func randomNet() xlate.Net {
	return xlate.Net{MaskBits: 1 + rand.Intn(31), Side: randomSide()}
}

func randomTexp() float64 {
	return rand.Float64() * maxTexp
}

// Initialize builds a fresh random genome: net count in
// [1,10], node count in [1,100] each bound to a uniformly chosen net, flow
// count in [1,10] each a fresh random flow between two uniformly chosen
// nodes, a freshly randomized fflow, and texp uniform in [0,100) (spec.md
// §4.5 "Initializer").
func Initialize() (*Genome, error) {
	nets := make([]xlate.Net, minNets+rand.Intn(maxNets-minNets+1))
	for i := range nets {
		nets[i] = randomNet()
	}

	nodes := make([]int, minNodes+rand.Intn(maxNodes-minNodes+1))
	for i := range nodes {
		nodes[i] = rand.Intn(len(nets))
	}

	flows := make([]flow.Flow, minFlows+rand.Intn(maxFlows-minFlows+1))
	for i := range flows {
		f, err := flow.Random(rand.Intn(len(nodes)), rand.Intn(len(nodes)))
		if err != nil {
			return nil, err
		}
		flows[i] = f
	}

	fflow, err := fx.EmptyFFlow()
	if err != nil {
		return nil, err
	}
	if err := fflow.RandomInitialize(); err != nil {
		return nil, err
	}

	return New(nets, nodes, flows, fflow, randomTexp())
}

// deleteNode removes node index from the genome: drops every flow touching
// it, shifts higher node indices in the surviving flows down by one, drops
// the node itself, then drops any net no longer referenced by a surviving
// node (original_source/genetic_engine.py's delete_node).
func deleteNode(g *Genome, index int) {
	var flows []flow.Flow
	for _, f := range g.Flows {
		if f.Node1() != index && f.Node2() != index {
			flows = append(flows, f)
		}
	}

	for _, f := range flows {
		f.ShiftNodeIndices(index)
	}

	g.Flows = flows
	g.Nodes = append(append([]int{}, g.Nodes[:index]...), g.Nodes[index+1:]...)
	compactNets(g)
}

// compactNets drops every net no longer referenced by any node and remaps
// the surviving nodes onto the compacted table. Idempotent: calling it with
// no orphaned nets is a no-op.
func compactNets(g *Genome) {
	used := make(map[int]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		used[n] = true
	}

	var nets []xlate.Net
	oldToNew := make(map[int]int, len(g.Nets))
	for i, n := range g.Nets {
		if used[i] {
			oldToNew[i] = len(nets)
			nets = append(nets, n)
		}
	}

	for i := range g.Nodes {
		g.Nodes[i] = oldToNew[g.Nodes[i]]
	}
	g.Nets = nets
}

// NetworkMutator mutates exactly one network's mask bits or side, adds a
// fresh network, or (when more than one exists) deletes one and cascades
// the deletion to every node and flow that referenced it (spec.md §4.5
// "Mutators"; original_source/genetic_engine.py's network_mutator).
func NetworkMutator(g *Genome) error {
	n := len(g.Nets)
	limit := n + 1
	if n == 1 {
		limit = n // disallow the delete branch when it's the only net
	}
	choice := rand.Intn(limit + 1)

	switch {
	case choice < n:
		if rand.Intn(2) == 0 {
			g.Nets[choice].MaskBits = 1 + rand.Intn(31)
		} else {
			g.Nets[choice].Side = randomSide()
		}
	case choice == n:
		g.Nets = append(g.Nets, randomNet())
	default:
		netToDel := rand.Intn(n)

		// Collect every node referencing the doomed net first, then delete
		// in descending index order, so earlier deletions never shift an
		// index still queued for removal (spec.md §9 "Node-deletion
		// iteration": "collect deletions first, then apply them in
		// descending index order").
		var toDelete []int
		for i, netIdx := range g.Nodes {
			if netIdx == netToDel {
				toDelete = append(toDelete, i)
			}
		}
		sort.Sort(sort.Reverse(sort.IntSlice(toDelete)))
		for _, idx := range toDelete {
			deleteNode(g, idx)
		}
		// netToDel may have had zero referencing nodes to begin with;
		// compactNets is idempotent so this also covers that case.
		compactNets(g)
	}
	return nil
}

// NodeMutator reassigns a node to a different net, appends a fresh node, or
// deletes one (cascading to its flows), with the same single-element
// guard as NetworkMutator (spec.md §4.5; genetic_engine.py's node_mutator).
func NodeMutator(g *Genome) error {
	n := len(g.Nodes)
	limit := n + 1
	if n == 1 {
		limit = n
	}
	choice := rand.Intn(limit + 1)

	switch {
	case choice < n:
		old := g.Nodes[choice]
		if len(g.Nets) > 1 {
			for g.Nodes[choice] == old {
				g.Nodes[choice] = rand.Intn(len(g.Nets))
			}
		}
	case choice == n:
		g.Nodes = append(g.Nodes, rand.Intn(len(g.Nets)))
	default:
		deleteNode(g, rand.Intn(n))
	}
	return nil
}

// TexpMutator resamples the experiment horizon to a new value in [0,100)
// (spec.md §4.5; genetic_engine.py's texp_mutator).
func TexpMutator(g *Genome) error {
	old := g.Texp
	for g.Texp == old {
		g.Texp = randomTexp()
	}
	return nil
}

// FFlowMutator mutates the genome-wide flow-count distribution
// (genetic_engine.py's fflow_mutator).
func FFlowMutator(g *Genome) error {
	return g.FFlow.Mutation()
}

// FlowMutator mutates an existing flow, appends a fresh random flow between
// two uniformly chosen nodes, or deletes one (genetic_engine.py's
// flow_mutator).
func FlowMutator(g *Genome) error {
	n := len(g.Flows)
	choice := rand.Intn(n + 2)

	switch {
	case choice < n:
		return g.Flows[choice].Mutation()
	case choice == n:
		f, err := flow.Random(rand.Intn(len(g.Nodes)), rand.Intn(len(g.Nodes)))
		if err != nil {
			return err
		}
		g.Flows = append(g.Flows, f)
	default:
		idx := rand.Intn(n)
		g.Flows = append(g.Flows[:idx], g.Flows[idx+1:]...)
	}
	return nil
}

// mutators is the closed set Mutate picks uniformly among (spec.md §9
// "Mutation as closed choice"; genetic_engine.py's
// mutator.setRandomApply(True) over network/node/texp/flow/fflow
// mutators).
var mutators = []func(*Genome) error{
	NetworkMutator,
	NodeMutator,
	TexpMutator,
	FlowMutator,
	FFlowMutator,
}

// Mutate applies exactly one of the five mutators, chosen uniformly, and
// re-validates the result.
func Mutate(g *Genome) error {
	if err := mutators[rand.Intn(len(mutators))](g); err != nil {
		return err
	}
	return g.Validate()
}
