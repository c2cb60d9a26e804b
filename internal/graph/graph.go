// Package graph defines the read-only succinct de Bruijn graph contract the
// search engine walks, plus a small in-memory reference implementation used
// by tests and the demo CLI. Building an actual succinct (rank/select based)
// encoding from reads is out of scope; this package only has to honor the
// IndexOf/Successors/K contract external SDBG builders would implement.
package graph

import "github.com/HKU-BAL/megagta/pkg/types"

// Edge is one successor step: the encoded nucleotide consumed (1..4, per
// seqcode) and the vertex it leads to.
type Edge struct {
	Symbol byte
	Next   types.NodeID
}

// Graph is the external de Bruijn graph contract: fixed k-mer size, vertex
// lookup by encoded k-mer, and directional successor enumeration.
type Graph interface {
	// K returns the fixed k-mer length this graph was built with.
	K() int
	// IndexOf returns the vertex indexed by the encoded k-mer kmer (as
	// produced by seqcode.EncodeKmer), or (types.NoNode, false) if the
	// k-mer is not present.
	IndexOf(kmer []byte) (types.NodeID, bool)
	// Successors returns the out-edges of node in the given direction.
	Successors(node types.NodeID, dir types.Direction) []Edge
}

// MemGraph is a small map-backed Graph used for tests and demos: vertices
// are encoded k-mer strings, and forward/reverse adjacency is stored
// explicitly rather than derived from a succinct rank/select index.
type MemGraph struct {
	k        int
	index    map[string]types.NodeID
	forward  map[types.NodeID][]Edge
	backward map[types.NodeID][]Edge
	nextID   types.NodeID
}

// NewMemGraph creates an empty graph with k-mer size k.
func NewMemGraph(k int) *MemGraph {
	return &MemGraph{
		k:        k,
		index:    make(map[string]types.NodeID),
		forward:  make(map[types.NodeID][]Edge),
		backward: make(map[types.NodeID][]Edge),
	}
}

func (g *MemGraph) K() int { return g.k }

// vertex returns the NodeID for an encoded k-mer, allocating a fresh one if
// this is the first time the k-mer has been seen.
func (g *MemGraph) vertex(kmer []byte) types.NodeID {
	key := string(kmer)
	if id, ok := g.index[key]; ok {
		return id
	}
	id := g.nextID
	g.nextID++
	g.index[key] = id
	return id
}

// AddEdge records a forward edge between the two encoded k-mers joined by
// symbol, and its mirrored backward edge.
func (g *MemGraph) AddEdge(fromKmer, toKmer []byte, symbol byte) {
	from := g.vertex(fromKmer)
	to := g.vertex(toKmer)
	g.forward[from] = append(g.forward[from], Edge{Symbol: symbol, Next: to})
	g.backward[to] = append(g.backward[to], Edge{Symbol: symbol, Next: from})
}

func (g *MemGraph) IndexOf(kmer []byte) (types.NodeID, bool) {
	id, ok := g.index[string(kmer)]
	if !ok {
		return types.NoNode, false
	}
	return id, true
}

func (g *MemGraph) Successors(node types.NodeID, dir types.Direction) []Edge {
	if dir == types.Forward {
		return g.forward[node]
	}
	return g.backward[node]
}
