// Package cache implements the transition cache shared across seed
// searches: a map from a node's identity to the identity of the best
// successor observed from it, across any prior seed. Reads are
// unsynchronized (hints are advisory); writes, which only happen during
// emission, are serialized with a test-and-set spinlock, per the
// concurrency notes in the engine this cache backs.
package cache

import (
	"sync/atomic"

	"github.com/HKU-BAL/megagta/pkg/types"
)

// Cache maps a parent node identity to the identity of the best child seen
// from it. Entries are value copies of identity-only fields, never
// pointers into a search's arena, so the cache safely outlives any single
// seed's arena reset.
type Cache struct {
	lock int32
	m    map[types.Identity]types.Identity
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{m: make(map[types.Identity]types.Identity)}
}

// Get looks up the best known child of parent. It performs no
// synchronization: a read racing a concurrent Put may observe the old or
// the new value, and either is a valid hint.
func (c *Cache) Get(parent types.Identity) (types.Identity, bool) {
	child, ok := c.m[parent]
	return child, ok
}

// Put records that child is the best successor observed from parent.
// Concurrent writers spin until the lock is free; insertions are rare
// relative to node expansions, so a spinlock is cheaper than a mutex here.
func (c *Cache) Put(parent, child types.Identity) {
	for !atomic.CompareAndSwapInt32(&c.lock, 0, 1) {
	}
	c.m[parent] = child
	atomic.StoreInt32(&c.lock, 0)
}
