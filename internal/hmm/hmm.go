// Package hmm implements the Plan7-style profile HMM scoring kernel: pure
// functions over emission and transition log-odds tables, generalized from
// the Plan7 node shape in TuftsBCB-seq's seq.HMM (Match/Insert/Delete states,
// MM/MI/MD/IM/II/DM/DD transitions) to the two alphabets (DNA, protein) and
// score_start/real_score_start formulas this engine needs.
package hmm

import (
	searcherrors "github.com/HKU-BAL/megagta/internal/errors"
	"github.com/HKU-BAL/megagta/internal/seqcode"
	"github.com/HKU-BAL/megagta/pkg/types"
)

// proteinOrder fixes the column order of the 20 amino acid emission scores.
const proteinOrder = "ACDEFGHIKLMNPQRSTVWY"

var proteinIndex [256]int8

func init() {
	for i := range proteinIndex {
		proteinIndex[i] = -1
	}
	for i := 0; i < len(proteinOrder); i++ {
		proteinIndex[proteinOrder[i]] = int8(i)
	}
}

// Transitions holds the seven Plan7 transition log-odds scores out of one
// model state. ID and DI are omitted, matching the Plan7 architecture.
type Transitions struct {
	MM, MI, MD, IM, II, DM, DD float64
}

func (t Transitions) score(k types.Transition) float64 {
	switch k {
	case types.MM:
		return t.MM
	case types.MI:
		return t.MI
	case types.MD:
		return t.MD
	case types.IM:
		return t.IM
	case types.II:
		return t.II
	case types.DM:
		return t.DM
	case types.DD:
		return t.DD
	default:
		return 0
	}
}

// Node holds the per-state match and insert emission rows, plus the
// transitions leaving this state.
type Node struct {
	Match  []float64
	Insert []float64
	Trans  Transitions
	MaxMsc float64
}

// Model is the immutable, read-only profile HMM the A* engine scores
// against. States are indexed 0..ModelLen; Nodes[0] is the begin state.
type Model struct {
	alphabet types.Alphabet
	nodes    []Node
}

// New builds a Model over nodes (including the begin state at index 0) for
// the given alphabet. len(nodes) - 1 is the model length.
func New(alphabet types.Alphabet, nodes []Node) *Model {
	return &Model{alphabet: alphabet, nodes: nodes}
}

// Alphabet reports whether this model scores DNA or translated protein
// residues.
func (m *Model) Alphabet() types.Alphabet { return m.alphabet }

// ModelLength is the number of match columns, excluding the begin state.
func (m *Model) ModelLength() int { return len(m.nodes) - 1 }

func (m *Model) state(state int) (*Node, error) {
	if state < 0 || state >= len(m.nodes) {
		return nil, searcherrors.New("hmm.state", searcherrors.ModelOutOfRange,
			"state index out of range")
	}
	return &m.nodes[state], nil
}

func (m *Model) symbolIndex(symbol byte) (int, error) {
	if m.alphabet == types.Protein {
		idx := proteinIndex[symbol]
		if idx < 0 {
			return 0, searcherrors.New("hmm.symbolIndex", searcherrors.InvalidAlphabet,
				"byte is not a recognized amino acid")
		}
		return int(idx), nil
	}
	code, err := seqcode.Encode(symbol)
	if err != nil {
		return 0, err
	}
	return int(code) - 1, nil
}

// Msc returns the match emission log-odds of symbol at state.
func (m *Model) Msc(state int, symbol byte) (float64, error) {
	n, err := m.state(state)
	if err != nil {
		return 0, err
	}
	idx, err := m.symbolIndex(symbol)
	if err != nil {
		return 0, err
	}
	return n.Match[idx], nil
}

// Isc returns the insert emission log-odds of symbol at state.
func (m *Model) Isc(state int, symbol byte) (float64, error) {
	n, err := m.state(state)
	if err != nil {
		return 0, err
	}
	idx, err := m.symbolIndex(symbol)
	if err != nil {
		return 0, err
	}
	return n.Insert[idx], nil
}

// Tsc returns the transition log-odds of kind out of state.
func (m *Model) Tsc(state int, kind types.Transition) (float64, error) {
	n, err := m.state(state)
	if err != nil {
		return 0, err
	}
	return n.Trans.score(kind), nil
}

// MaxMatchEmission returns the highest match emission score at state, used
// as the per-column heuristic upper bound.
func (m *Model) MaxMatchEmission(state int) (float64, error) {
	n, err := m.state(state)
	if err != nil {
		return 0, err
	}
	return n.MaxMsc, nil
}

// ScoreStart computes the normalized (heuristic-compatible) starting score
// of word scored against model columns s0+1..s0+len(word), per the
// score_start formula: the real-score term minus the per-column
// max_match_emission.
func ScoreStart(m *Model, word string, s0 int) (float64, error) {
	var total float64
	for i := 1; i <= len(word); i++ {
		msc, err := m.Msc(s0+i, word[i-1])
		if err != nil {
			return 0, err
		}
		tsc, err := m.Tsc(s0+i-1, types.MM)
		if err != nil {
			return 0, err
		}
		maxMsc, err := m.MaxMatchEmission(s0 + i)
		if err != nil {
			return 0, err
		}
		total += msc + tsc - maxMsc
	}
	return total, nil
}

// RealScoreStart computes the unnormalized starting score of word, used for
// output selection rather than heuristic ordering.
func RealScoreStart(m *Model, word string, s0 int) (float64, error) {
	var total float64
	for i := 1; i <= len(word); i++ {
		msc, err := m.Msc(s0+i, word[i-1])
		if err != nil {
			return 0, err
		}
		tsc, err := m.Tsc(s0+i-1, types.MM)
		if err != nil {
			return 0, err
		}
		total += msc + tsc
	}
	return total, nil
}
