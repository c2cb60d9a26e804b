package search

import (
	"testing"

	"github.com/HKU-BAL/megagta/internal/cache"
	"github.com/HKU-BAL/megagta/internal/hmm"
	"github.com/HKU-BAL/megagta/internal/memory"
	"github.com/HKU-BAL/megagta/pkg/types"
)

// fakeEnumerator lets tests script successor production by parent StateNo
// without needing a real graph or PHMM behind it.
type fakeEnumerator struct {
	byStateNo map[int][]*AStarNode
}

func (f *fakeEnumerator) Enumerate(parent *AStarNode, dir types.Direction, hint *types.Identity, arena *memory.Arena[AStarNode]) ([]*AStarNode, error) {
	children := f.byStateNo[parent.StateNo]
	out := make([]*AStarNode, len(children))
	for i, c := range children {
		child := *c
		child.DiscoveredFrom = parent
		out[i] = &child
	}
	return out, nil
}

func modelOfLength(n int) *hmm.Model {
	nodes := make([]hmm.Node, n+1)
	return hmm.New(types.DNA, nodes)
}

func TestSearchImmediateTerminal(t *testing.T) {
	model := modelOfLength(2)
	start := &AStarNode{StateNo: 2, RealScore: 7}
	goal, err := Search(model, start, &fakeEnumerator{}, cache.New(), types.Forward, memory.New[AStarNode](4), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal != start {
		t.Fatalf("expected the starting node to be returned immediately")
	}
	if goal.Partial {
		t.Error("a node already at or past model length should not be partial")
	}
}

func TestSearchNoSuccessorsFails(t *testing.T) {
	model := modelOfLength(2)
	start := &AStarNode{StateNo: 0}
	_, err := Search(model, start, &fakeEnumerator{byStateNo: map[int][]*AStarNode{}}, cache.New(), types.Forward, memory.New[AStarNode](4), 0)
	if err == nil {
		t.Fatal("expected an error when the starting node has no successors")
	}
}

func TestSearchSingleMatchStepReachesTerminal(t *testing.T) {
	model := modelOfLength(2)
	start := &AStarNode{StateNo: 0}
	enum := &fakeEnumerator{byStateNo: map[int][]*AStarNode{
		0: {{StateNo: 1, NodeID: 1, RealScore: 1, Score: 1, Length: 1, NuclEmission: "a"}},
		1: {{StateNo: 2, NodeID: 2, RealScore: 2, Score: 2, Length: 2, NuclEmission: ""}},
	}}

	goal, err := Search(model, start, enum, cache.New(), types.Forward, memory.New[AStarNode](4), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.Partial {
		t.Error("a search that reaches a terminal state should not be partial")
	}
	if goal.StateNo != 2 {
		t.Errorf("expected the terminal node (StateNo=2), got StateNo=%d", goal.StateNo)
	}
}

func TestSearchPartialOnFrontierExhaustion(t *testing.T) {
	model := modelOfLength(100)
	start := &AStarNode{StateNo: 0}
	enum := &fakeEnumerator{byStateNo: map[int][]*AStarNode{
		0: {{StateNo: 37, NodeID: 1, RealScore: 5, Score: 5, Length: 10}},
		// state 37 produces no successors -> dead end.
	}}

	goal, err := Search(model, start, enum, cache.New(), types.Forward, memory.New[AStarNode](4), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !goal.Partial {
		t.Error("expected a partial goal when the frontier is exhausted before a terminal state")
	}
}

func TestSearchPruningDropsIneligibleSuccessors(t *testing.T) {
	model := modelOfLength(100)
	start := &AStarNode{StateNo: 0}
	enum := &fakeEnumerator{byStateNo: map[int][]*AStarNode{
		0:  {{StateNo: 10, NodeID: 1, RealScore: 5, Score: 5, Length: 10}},
		10: {{StateNo: 20, NodeID: 2, RealScore: 5, Score: 5, Length: 10, NegativeCount: 99}},
	}}

	goal, err := Search(model, start, enum, cache.New(), types.Forward, memory.New[AStarNode](4), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.StateNo == 20 {
		t.Error("expected the heavily-negative successor to be pruned, but it was accepted")
	}
	if !goal.Partial {
		t.Error("expected a partial goal once pruning empties the frontier")
	}
}

func TestSearchCacheHintIsPassedToEnumerator(t *testing.T) {
	model := modelOfLength(2)
	start := &AStarNode{StateNo: 0, NodeID: 9}
	tcache := cache.New()
	tcache.Put(start.Identity(), types.Identity{NodeID: 42})

	var sawHint *types.Identity
	enum := &recordingEnumerator{
		inner: &fakeEnumerator{byStateNo: map[int][]*AStarNode{
			0: {{StateNo: 2, NodeID: 2, RealScore: 1, Score: 1, Length: 1}},
		}},
		onHint: func(h *types.Identity) { sawHint = h },
	}

	_, err := Search(model, start, enum, tcache, types.Forward, memory.New[AStarNode](4), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sawHint == nil || sawHint.NodeID != 42 {
		t.Errorf("expected the cached hint to reach the enumerator, got %+v", sawHint)
	}
}

type recordingEnumerator struct {
	inner  Enumerator
	onHint func(*types.Identity)
}

func (r *recordingEnumerator) Enumerate(parent *AStarNode, dir types.Direction, hint *types.Identity, arena *memory.Arena[AStarNode]) ([]*AStarNode, error) {
	r.onHint(hint)
	return r.inner.Enumerate(parent, dir, hint, arena)
}
