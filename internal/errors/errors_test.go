package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewError(t *testing.T) {
	err := New("hmm.Msc", ModelOutOfRange, "state 42 out of range")

	if err.Code != ModelOutOfRange {
		t.Errorf("Expected code %s, got %s", ModelOutOfRange, err.Code)
	}
	if err.Message != "state 42 out of range" {
		t.Errorf("Unexpected message: %s", err.Message)
	}
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}
}

func TestWrapError(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap("graph.IndexOf", SeedNotInGraph, "seed not indexed", cause)

	if err.Cause != cause {
		t.Error("Cause should be set")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return cause")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap("search.astar", NoSuccessors, "no legal successors", nil)
	sentinel := New("", NoSuccessors, "")

	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should match SearchErrors with the same Code")
	}

	other := New("", InvalidAlphabet, "")
	if errors.Is(err, other) {
		t.Error("errors.Is should not match SearchErrors with a different Code")
	}
}
