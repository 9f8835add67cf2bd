package core

import (
	"errors"
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	// Generate many IDs
	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

func TestParseRunID(t *testing.T) {
	if _, err := ParseRunID("  "); err == nil {
		t.Error("Expected error for blank run ID")
	}
	id, err := ParseRunID("run-1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.String() != "run-1" {
		t.Errorf("Expected 'run-1', got '%s'", id)
	}
}

func TestErrorConstructorsWrapSentinels(t *testing.T) {
	if !errors.Is(NewInvalidRangeError(1, 0, 0.1), ErrInvalidRange) {
		t.Error("Invalid range constructor must wrap ErrInvalidRange")
	}
	if !errors.Is(NewSampleLengthMismatchError(3, 2), ErrSampleLengthMismatch) {
		t.Error("Mismatch constructor must wrap ErrSampleLengthMismatch")
	}
	if !errors.Is(NewDegenerateLikelihoodError(0, 0), ErrDegenerateLikelihood) {
		t.Error("Degenerate constructor must wrap ErrDegenerateLikelihood")
	}
	if !IsInputError(NewSampleLengthMismatchError(3, 2)) {
		t.Error("Mismatch must classify as input error")
	}
	if IsInputError(NewDegenerateLikelihoodError(1, 0)) {
		t.Error("Degenerate likelihood is not an input error")
	}
}

func TestComputeInputHashDeterministic(t *testing.T) {
	f := []float64{1.5, 2.5, 3.5}
	b := []float64{-1.5, -2.5, -3.5}

	h1 := ComputeInputHash(f, b, 1.0, -10, 10, 0.1)
	h2 := ComputeInputHash(f, b, 1.0, -10, 10, 0.1)
	if h1 != h2 {
		t.Error("Hash must be deterministic for identical inputs")
	}

	h3 := ComputeInputHash(f, b, 2.0, -10, 10, 0.1)
	if h1 == h3 {
		t.Error("Hash must change when parameters change")
	}
}
