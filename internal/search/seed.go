package search

import (
	searcherrors "github.com/HKU-BAL/megagta/internal/errors"
	"github.com/HKU-BAL/megagta/internal/graph"
	"github.com/HKU-BAL/megagta/internal/hmm"
	"github.com/HKU-BAL/megagta/internal/seqcode"
	"github.com/HKU-BAL/megagta/pkg/types"
)

// reverseString reverses s byte-by-byte; amino acid codes are single ASCII
// bytes so this is safe to use on translated sequences.
func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// BuildSeedNode is the seed adapter (§4.9): it turns a nucleotide seed
// k-mer into the root search node for one direction. startState is the
// caller-supplied forward-frame column the seed begins at; for a reverse
// search this function derives the correct reverse-frame column itself, so
// callers always pass the same forward-oriented startState regardless of
// direction.
func BuildSeedNode(model *hmm.Model, g graph.Graph, seed string, startState int, dir types.Direction) (*AStarNode, error) {
	isProtein := model.Alphabet() == types.Protein

	var length int
	if isProtein {
		length = len(seed) / 3
	} else {
		length = len(seed)
	}

	var word string
	var kmer string
	adapterStart := startState

	switch {
	case dir == types.Forward && isProtein:
		word = seqcode.Translate(seed)
		kmer = seed
	case dir == types.Forward:
		word = seed
		kmer = seed
	case isProtein:
		rc := seqcode.RevComp(seed)
		word = reverseString(seqcode.Translate(rc))
		kmer = rc
		adapterStart = model.ModelLength() - startState - length
	default:
		rc := seqcode.RevComp(seed)
		word = rc
		kmer = rc
		adapterStart = model.ModelLength() - startState - length
	}

	score, err := hmm.ScoreStart(model, word, adapterStart)
	if err != nil {
		return nil, err
	}
	realScore, err := hmm.RealScoreStart(model, word, adapterStart)
	if err != nil {
		return nil, err
	}

	encoded, err := seqcode.EncodeKmer([]byte(kmer))
	if err != nil {
		return nil, err
	}
	nodeID, ok := g.IndexOf(encoded)
	if !ok {
		return nil, searcherrors.New("search.BuildSeedNode", searcherrors.SeedNotInGraph,
			"seed k-mer is not indexed by the graph")
	}

	stateNo := adapterStart
	if isProtein {
		stateNo = adapterStart + length
	}

	return &AStarNode{
		NodeID:    nodeID,
		StateNo:   stateNo,
		StateKind: types.Match,
		Score:     score,
		RealScore: realScore,
		Length:    length,
	}, nil
}
