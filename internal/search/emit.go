package search

import (
	"strings"

	"github.com/HKU-BAL/megagta/internal/cache"
	"github.com/HKU-BAL/megagta/internal/seqcode"
	"github.com/HKU-BAL/megagta/pkg/types"
)

// Emit is the result emitter (§4.8): it walks goal's ancestry back to the
// root, concatenating each non-delete node's NuclEmission, and installs
// every (parent -> child) edge it crosses into tcache. For a reverse
// search, the assembled sequence is reverse-complemented before it is
// returned, so every caller gets a left-to-right, 5'-to-3' extension
// regardless of which direction produced it.
func Emit(goal *AStarNode, dir types.Direction, tcache *cache.Cache) string {
	var chunks []string
	for ptr := goal; ptr.DiscoveredFrom != nil; ptr = ptr.DiscoveredFrom {
		if ptr.StateKind != types.Delete {
			chunks = append(chunks, ptr.NuclEmission)
		}
		tcache.Put(ptr.DiscoveredFrom.Identity(), ptr.Identity())
	}

	// chunks was built goal-to-root; reverse the chunk order (not the
	// characters within a chunk) to restore left-to-right order.
	for i, j := 0, len(chunks)-1; i < j; i, j = i+1, j-1 {
		chunks[i], chunks[j] = chunks[j], chunks[i]
	}
	seq := strings.Join(chunks, "")

	if dir == types.Reverse {
		seq = seqcode.RevComp(seq)
	}
	return seq
}
