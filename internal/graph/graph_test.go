package graph

import (
	"testing"

	"github.com/HKU-BAL/megagta/pkg/types"
)

func TestIndexOfUnknownKmer(t *testing.T) {
	g := NewMemGraph(4)
	if _, ok := g.IndexOf([]byte{1, 2, 3, 4}); ok {
		t.Fatal("expected IndexOf on an empty graph to report absent")
	}
}

func TestAddEdgeAndIndexOf(t *testing.T) {
	g := NewMemGraph(4)
	g.AddEdge([]byte{1, 2, 3, 4}, []byte{2, 3, 4, 1}, 1)

	from, ok := g.IndexOf([]byte{1, 2, 3, 4})
	if !ok {
		t.Fatal("expected from k-mer to be indexed after AddEdge")
	}
	to, ok := g.IndexOf([]byte{2, 3, 4, 1})
	if !ok {
		t.Fatal("expected to k-mer to be indexed after AddEdge")
	}
	if from == to {
		t.Fatal("distinct k-mers should get distinct vertex ids")
	}
}

func TestSuccessorsForwardAndBackward(t *testing.T) {
	g := NewMemGraph(4)
	g.AddEdge([]byte{1, 2, 3, 4}, []byte{2, 3, 4, 1}, 1)

	from, _ := g.IndexOf([]byte{1, 2, 3, 4})
	to, _ := g.IndexOf([]byte{2, 3, 4, 1})

	forward := g.Successors(from, types.Forward)
	if len(forward) != 1 || forward[0].Next != to || forward[0].Symbol != 1 {
		t.Errorf("unexpected forward successors: %+v", forward)
	}

	backward := g.Successors(to, types.Reverse)
	if len(backward) != 1 || backward[0].Next != from {
		t.Errorf("unexpected backward successors: %+v", backward)
	}
}

func TestSuccessorsOfUnknownNodeIsEmpty(t *testing.T) {
	g := NewMemGraph(4)
	if succ := g.Successors(types.NodeID(999), types.Forward); len(succ) != 0 {
		t.Errorf("expected no successors for an unknown node, got %+v", succ)
	}
}
