package search

import (
	"container/heap"
	"math"

	"github.com/HKU-BAL/megagta/internal/cache"
	searcherrors "github.com/HKU-BAL/megagta/internal/errors"
	"github.com/HKU-BAL/megagta/internal/hmm"
	"github.com/HKU-BAL/megagta/internal/memory"
	"github.com/HKU-BAL/megagta/pkg/types"
)

// Enumerator produces the successor nodes reachable from parent by one
// PHMM column transition consuming at most one graph edge (or, for protein
// models, one codon). hint, when non-nil, is a previously cached best
// child's identity the enumerator may use to order or shortlist its
// results; it never changes the legal successor set.
type Enumerator interface {
	Enumerate(parent *AStarNode, dir types.Direction, hint *types.Identity, arena *memory.Arena[AStarNode]) ([]*AStarNode, error)
}

// exitScore is the normalized score used to select the reported goal,
// discounting short alignments via the precomputed exit-probability table.
func exitScore(n *AStarNode) float64 {
	return (n.RealScore + types.ExitProbability(n.Length)) / math.Ln2
}

// Search runs the best-first A* search described in §4.6, starting from
// start and extending in direction dir. It returns the node selected by
// the back-walk for highest real_score ancestor. pruning <= 0 disables
// heuristic pruning entirely.
func Search(
	model *hmm.Model,
	start *AStarNode,
	enumerator Enumerator,
	tcache *cache.Cache,
	dir types.Direction,
	arena *memory.Arena[AStarNode],
	pruning int,
) (*AStarNode, error) {
	if start.StateNo >= model.ModelLength() {
		start.Partial = false
		return start, nil
	}

	closed := make(map[types.Identity]struct{})
	openIndex := make(map[types.Identity]*AStarNode)
	open := &nodeHeap{}
	heap.Init(open)

	children, err := enumerate(enumerator, start, dir, tcache, arena)
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, searcherrors.New("search.Search", searcherrors.NoSuccessors,
			"starting node has no legal successors")
	}
	for _, child := range children {
		openIndex[child.Identity()] = child
		heap.Push(open, child)
	}

	interGoal := start

	for open.Len() > 0 {
		curr := heap.Pop(open).(*AStarNode)
		if _, dead := closed[curr.Identity()]; dead {
			continue
		}
		if openIndex[curr.Identity()] != curr {
			continue
		}

		if curr.StateNo >= model.ModelLength() {
			curr.Partial = false
			if exitScore(curr) > exitScore(interGoal) {
				interGoal = curr
			}
			return backWalk(interGoal), nil
		}

		closed[curr.Identity()] = struct{}{}
		if exitScore(curr) > exitScore(interGoal) {
			interGoal = curr
		}

		nexts, err := enumerate(enumerator, curr, dir, tcache, arena)
		if err != nil {
			return nil, err
		}

		for _, next := range nexts {
			if pruning > 0 {
				eligible := (next.Length < 5 || next.NegativeCount <= pruning) && next.RealScore > 0
				if !eligible {
					continue
				}
			}

			id := next.Identity()
			existing, present := openIndex[id]
			if !present || !existing.dominates(next) {
				openIndex[id] = next
				heap.Push(open, next)
			}
		}
	}

	interGoal.Partial = true
	return backWalk(interGoal), nil
}

// enumerate consults the transition cache for a hint on parent, then asks
// the enumerator for parent's successors.
func enumerate(enumerator Enumerator, parent *AStarNode, dir types.Direction, tcache *cache.Cache, arena *memory.Arena[AStarNode]) ([]*AStarNode, error) {
	var hintPtr *types.Identity
	if hint, ok := tcache.Get(parent.Identity()); ok {
		hintPtr = &hint
	}
	return enumerator.Enumerate(parent, dir, hintPtr, arena)
}

// backWalk implements the back-walk for the highest-score ancestor (§4.7):
// starting from the best exit-score candidate, walk its ancestry chain via
// DiscoveredFrom pointers and return the node with the maximum RealScore,
// which may be goal itself.
func backWalk(goal *AStarNode) *AStarNode {
	best := goal
	for p := goal; p.DiscoveredFrom != nil; p = p.DiscoveredFrom {
		if p.DiscoveredFrom.RealScore > best.RealScore {
			best = p.DiscoveredFrom
		}
	}
	return best
}
