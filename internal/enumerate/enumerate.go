// Package enumerate implements the successor enumerator (§4.4): given a
// current search node and a direction, it produces every legal next node
// reachable by one PHMM column transition, consuming one graph edge per
// nucleotide (three edges, translated to a codon, for protein models).
package enumerate

import (
	"github.com/HKU-BAL/megagta/internal/graph"
	"github.com/HKU-BAL/megagta/internal/hmm"
	"github.com/HKU-BAL/megagta/internal/memory"
	"github.com/HKU-BAL/megagta/internal/search"
	"github.com/HKU-BAL/megagta/internal/seqcode"
	"github.com/HKU-BAL/megagta/pkg/types"
)

// GraphEnumerator is the reference Enumerator implementation: it combines a
// PHMM's scoring kernel with a graph's successor oracle.
type GraphEnumerator struct {
	Model *hmm.Model
	Graph graph.Graph
}

// New creates a GraphEnumerator over model and g.
func New(model *hmm.Model, g graph.Graph) *GraphEnumerator {
	return &GraphEnumerator{Model: model, Graph: g}
}

// path is one walk through the graph consuming basesPerStep edges.
type path struct {
	symbols []byte
	node    types.NodeID
}

func (e *GraphEnumerator) basesPerStep() int {
	if e.Model.Alphabet() == types.Protein {
		return 3
	}
	return 1
}

// walkPaths enumerates every path of exactly n edges out of node in
// direction dir. For DNA (n=1) this is just node's edge list; for protein
// (n=3) it is every codon reachable by three consecutive edges.
func (e *GraphEnumerator) walkPaths(node types.NodeID, dir types.Direction, n int) []path {
	if n <= 0 {
		return nil
	}
	edges := e.Graph.Successors(node, dir)
	if n == 1 {
		out := make([]path, 0, len(edges))
		for _, edge := range edges {
			out = append(out, path{symbols: []byte{edge.Symbol}, node: edge.Next})
		}
		return out
	}
	var out []path
	for _, edge := range edges {
		for _, rest := range e.walkPaths(edge.Next, dir, n-1) {
			symbols := make([]byte, 0, n)
			symbols = append(symbols, edge.Symbol)
			symbols = append(symbols, rest.symbols...)
			out = append(out, path{symbols: symbols, node: rest.node})
		}
	}
	return out
}

func transitionKind(parent, child types.StateKind) (types.Transition, bool) {
	switch parent {
	case types.Match:
		switch child {
		case types.Match:
			return types.MM, true
		case types.Insert:
			return types.MI, true
		case types.Delete:
			return types.MD, true
		}
	case types.Insert:
		switch child {
		case types.Match:
			return types.IM, true
		case types.Insert:
			return types.II, true
		}
	case types.Delete:
		switch child {
		case types.Match:
			return types.DM, true
		case types.Delete:
			return types.DD, true
		}
	}
	return 0, false
}

// buildStep scores a match or insert step along p and returns the child
// node, or nil if the step is not legal from parent's state kind.
func (e *GraphEnumerator) buildStep(parent *search.AStarNode, p path, kind types.StateKind) (*search.AStarNode, error) {
	trans, ok := transitionKind(parent.StateKind, kind)
	if !ok {
		return nil, nil
	}

	letters := make([]byte, len(p.symbols))
	for i, s := range p.symbols {
		letters[i] = seqcode.Decode(s)
	}
	nuclEmission := string(letters)

	var symbol byte
	if e.Model.Alphabet() == types.Protein {
		aa := seqcode.Translate(nuclEmission)
		if len(aa) == 0 {
			return nil, nil
		}
		symbol = aa[0]
	} else {
		symbol = letters[0]
	}

	newStateNo := parent.StateNo
	var emit float64
	var err error
	if kind == types.Match {
		newStateNo = parent.StateNo + 1
		emit, err = e.Model.Msc(newStateNo, symbol)
	} else {
		emit, err = e.Model.Isc(newStateNo, symbol)
	}
	if err != nil {
		return nil, err
	}

	tsc, err := e.Model.Tsc(parent.StateNo, trans)
	if err != nil {
		return nil, err
	}
	stepReal := emit + tsc

	stepNorm := stepReal
	if kind == types.Match {
		maxMsc, err := e.Model.MaxMatchEmission(newStateNo)
		if err != nil {
			return nil, err
		}
		stepNorm = stepReal - maxMsc
	}

	return &search.AStarNode{
		NodeID:         p.node,
		StateNo:        newStateNo,
		StateKind:      kind,
		Score:          parent.Score + stepNorm,
		RealScore:      parent.RealScore + stepReal,
		FVal:           parent.Score + stepNorm,
		Length:         parent.Length + 1,
		NegativeCount:  negativeCount(parent.NegativeCount, stepReal),
		NuclEmission:   nuclEmission,
		DiscoveredFrom: parent,
	}, nil
}

// buildDelete scores a delete step: no graph edge consumed, no nucleotides
// emitted, state_no advances by one.
func (e *GraphEnumerator) buildDelete(parent *search.AStarNode) (*search.AStarNode, error) {
	trans, ok := transitionKind(parent.StateKind, types.Delete)
	if !ok {
		return nil, nil
	}
	tsc, err := e.Model.Tsc(parent.StateNo, trans)
	if err != nil {
		return nil, err
	}
	return &search.AStarNode{
		NodeID:         parent.NodeID,
		StateNo:        parent.StateNo + 1,
		StateKind:      types.Delete,
		Score:          parent.Score + tsc,
		RealScore:      parent.RealScore + tsc,
		FVal:           parent.Score + tsc,
		Length:         parent.Length,
		NegativeCount:  negativeCount(parent.NegativeCount, tsc),
		NuclEmission:   "",
		DiscoveredFrom: parent,
	}, nil
}

func negativeCount(prev int, stepReal float64) int {
	if stepReal <= 0 {
		return prev + 1
	}
	return 0
}

// Enumerate implements search.Enumerator.
func (e *GraphEnumerator) Enumerate(parent *search.AStarNode, dir types.Direction, hint *types.Identity, arena *memory.Arena[search.AStarNode]) ([]*search.AStarNode, error) {
	var out []*search.AStarNode

	paths := e.walkPaths(parent.NodeID, dir, e.basesPerStep())
	for _, p := range paths {
		for _, kind := range [...]types.StateKind{types.Match, types.Insert} {
			child, err := e.buildStep(parent, p, kind)
			if err != nil {
				return nil, err
			}
			if child != nil {
				out = append(out, commit(arena, child))
			}
		}
	}

	if del, err := e.buildDelete(parent); err != nil {
		return nil, err
	} else if del != nil {
		out = append(out, commit(arena, del))
	}

	if hint != nil {
		bubbleHintToFront(out, *hint)
	}
	return out, nil
}

// commit copies child into the arena and returns the stable pointer, so
// every node handed to the engine is arena-owned.
func commit(arena *memory.Arena[search.AStarNode], child *search.AStarNode) *search.AStarNode {
	n := arena.Construct()
	*n = *child
	return n
}

// bubbleHintToFront moves the node matching hint's identity, if present,
// to the front of out. It never removes or adds a node.
func bubbleHintToFront(out []*search.AStarNode, hint types.Identity) {
	for i, n := range out {
		if n.Identity() == hint {
			out[0], out[i] = out[i], out[0]
			return
		}
	}
}
