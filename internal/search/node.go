// Package search implements the graph-aligned A* engine: the search-node
// model and its priority ordering, the best-first search loop, the
// back-walk that selects the reported goal, the emitter that turns a goal's
// ancestry into a nucleotide contig, and the seed adapter that builds the
// starting node for a forward or reverse search. Its heap shape follows the
// container/heap.Interface pattern bebop-poly's linearfold package uses for
// its own priority queue.
package search

import "github.com/HKU-BAL/megagta/pkg/types"

// AStarNode is the unit of search. Identity fields (NodeID, StateNo,
// StateKind) determine equality and hashing for the closed set, the open
// index and the transition cache; the remaining fields are payload and
// never participate in identity.
type AStarNode struct {
	NodeID    types.NodeID
	StateNo   int
	StateKind types.StateKind

	FVal          float64
	Score         float64
	RealScore     float64
	Length        int
	NegativeCount int
	Partial       bool

	// NuclEmission holds the zero to three nucleotides this node appends
	// to the contig when visited by the back-walk, lowercase. Empty for
	// delete nodes.
	NuclEmission string

	// DiscoveredFrom is the raw pointer to the parent node. Both node and
	// parent are owned by the same per-seed arena, so the pointer stays
	// valid for the whole search; it is nil only for the root.
	DiscoveredFrom *AStarNode
}

// Identity returns the three-field key used for hashing and equality.
func (n *AStarNode) Identity() types.Identity {
	return types.Identity{NodeID: n.NodeID, StateNo: n.StateNo, StateKind: n.StateKind}
}

// dominates reports whether n is at least as good as other under the
// open-index dominance rule (§4.2): n dominates other unless n.Score is
// strictly smaller, or scores are equal and n.Length is strictly larger.
func (n *AStarNode) dominates(other *AStarNode) bool {
	if n.Score != other.Score {
		return n.Score > other.Score
	}
	return n.Length <= other.Length
}

// less implements the open heap's priority order: higher FVal first, ties
// broken by higher RealScore, then by smaller Length.
func less(a, b *AStarNode) bool {
	if a.FVal != b.FVal {
		return a.FVal > b.FVal
	}
	if a.RealScore != b.RealScore {
		return a.RealScore > b.RealScore
	}
	return a.Length < b.Length
}

// nodeHeap is a container/heap.Interface over pointers into the arena. It
// may contain stale entries superseded by a later decrease-key replacement;
// the engine discards those when popped.
type nodeHeap []*AStarNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*AStarNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
