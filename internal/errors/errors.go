// Package errors defines the typed error codes the search engine can
// surface, per spec §7. All of them abort the current seed search; none of
// them are retried, so — unlike the teacher's internal/errors package —
// there is no circuit breaker or backoff machinery here, only a small
// wrapped error type good enough for errors.Is/errors.As.
package errors

import "fmt"

// Code names one of the four error kinds the core can surface.
type Code string

const (
	// InvalidAlphabet: input contains a byte not in the model's alphabet.
	InvalidAlphabet Code = "INVALID_ALPHABET"
	// SeedNotInGraph: the seed k-mer is not indexed by the graph.
	SeedNotInGraph Code = "SEED_NOT_IN_GRAPH"
	// NoSuccessors: the starting node has no legal successors and is not
	// already terminal.
	NoSuccessors Code = "NO_SUCCESSORS"
	// ModelOutOfRange: a scoring query addresses a state outside
	// [0, model_length], where state 0 is the begin state.
	ModelOutOfRange Code = "MODEL_OUT_OF_RANGE"
)

// SearchError is the error type returned by the core packages. It carries
// the failing operation and an optional cause so callers can use
// errors.Is/errors.As against Code without string matching.
type SearchError struct {
	Code    Code
	Op      string
	Message string
	Cause   error
}

func (e *SearchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s: %v", e.Op, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Code, e.Message)
}

func (e *SearchError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, someSearchError) match on Code alone, so callers
// can compare against a sentinel built with New(op, code, "") regardless of
// message or op.
func (e *SearchError) Is(target error) bool {
	other, ok := target.(*SearchError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// New creates a SearchError with no wrapped cause.
func New(op string, code Code, message string) *SearchError {
	return &SearchError{Op: op, Code: code, Message: message}
}

// Wrap creates a SearchError around an existing cause.
func Wrap(op string, code Code, message string, cause error) *SearchError {
	return &SearchError{Op: op, Code: code, Message: message, Cause: cause}
}
