// Package memory implements the node arena described in spec §4.3: an
// append-only allocator that produces addresses stable until a bulk reset,
// so a child search node can keep a raw pointer to its parent for the
// lifetime of a seed search. It generalizes the teacher's byte-offset bump
// allocator (internal/memory/arena.go in the teacher repo) to a typed slab
// allocator using generics, since the arena here hands out *search.AStarNode
// pointers rather than raw byte slices.
package memory

import "sync"

// defaultSlabSize is the number of elements preallocated per slab. Sized so
// a single seed's search rarely needs a second slab, while staying small
// enough that resetting never touches more memory than most searches use.
const defaultSlabSize = 4096

// Arena is an append-only region allocator for values of type T. Construct
// returns a pointer into a preallocated slab; that pointer is stable until
// Reset, because a slab's backing array is never grown past its original
// capacity — once a slab fills up, allocation moves on to a new slab
// instead of reallocating the old one.
type Arena[T any] struct {
	slabSize int
	slabs    [][]T
	cur      int
}

// New creates an arena with the given per-slab capacity. A slabSize <= 0
// falls back to defaultSlabSize.
func New[T any](slabSize int) *Arena[T] {
	if slabSize <= 0 {
		slabSize = defaultSlabSize
	}
	return &Arena[T]{
		slabSize: slabSize,
		slabs:    [][]T{make([]T, 0, slabSize)},
	}
}

// Construct allocates a new zero-valued T from the arena and returns a
// stable pointer to it.
func (a *Arena[T]) Construct() *T {
	slab := a.slabs[a.cur]
	if len(slab) == cap(slab) {
		a.slabs = append(a.slabs, make([]T, 0, a.slabSize))
		a.cur++
		slab = a.slabs[a.cur]
	}
	var zero T
	slab = append(slab, zero)
	a.slabs[a.cur] = slab
	return &slab[len(slab)-1]
}

// Reset reclaims every slab for reuse without freeing its backing memory,
// so a worker can reuse the same Arena across seeds, per spec §5 ("arena
// owns all non-seed nodes... reset between seeds").
func (a *Arena[T]) Reset() {
	for i := range a.slabs {
		a.slabs[i] = a.slabs[i][:0]
	}
	a.cur = 0
}

// Used returns the number of values currently allocated from the arena.
func (a *Arena[T]) Used() int {
	used := 0
	for _, slab := range a.slabs {
		used += len(slab)
	}
	return used
}

// Pool hands out reset, ready-to-use arenas to search workers and takes
// them back, mirroring the teacher's PooledArena: a sync.Pool wrapper that
// avoids re-zeroing large slabs on every seed when a worker goroutine keeps
// searching seed after seed.
type Pool[T any] struct {
	slabSize int
	pool     sync.Pool
}

// NewPool creates a Pool that hands out arenas with the given per-slab
// capacity.
func NewPool[T any](slabSize int) *Pool[T] {
	p := &Pool[T]{slabSize: slabSize}
	p.pool.New = func() any {
		return New[T](slabSize)
	}
	return p
}

// Get returns an arena ready for a new seed search. The arena is reset
// before being handed out, so a reused arena never leaks state across
// seeds.
func (p *Pool[T]) Get() *Arena[T] {
	arena := p.pool.Get().(*Arena[T])
	arena.Reset()
	return arena
}

// Put returns an arena to the pool once a worker's seed search (and its
// emitter pass) has finished with it.
func (p *Pool[T]) Put(arena *Arena[T]) {
	p.pool.Put(arena)
}
