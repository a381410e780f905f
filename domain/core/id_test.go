package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

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

// TestNewShortIDLength tests the 8-character participant/gamble label form
func TestNewShortIDLength(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := NewShortID()
		if len(id) != 8 {
			t.Fatalf("Expected 8-character short ID, got %q (%d chars)", id, len(id))
		}
	}
}

// TestIDString tests ID string conversion
func TestIDString(t *testing.T) {
	id := ID("test-123")
	if id.String() != "test-123" {
		t.Errorf("Expected String() to return 'test-123', got '%s'", id.String())
	}
}

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	emptyID := ID("")
	if !emptyID.IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}

	nonEmptyID := ID("not-empty")
	if nonEmptyID.IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseSessionID tests session ID parsing
func TestParseSessionID(t *testing.T) {
	if _, err := ParseSessionID(""); err == nil {
		t.Error("Expected error parsing empty session ID")
	}
	if _, err := ParseSessionID("  "); err == nil {
		t.Error("Expected error parsing whitespace session ID")
	}
	id, err := ParseSessionID("abc123")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.String() != "abc123" {
		t.Errorf("Expected 'abc123', got %q", id)
	}
}

// TestParseParticipantID tests participant ID parsing
func TestParseParticipantID(t *testing.T) {
	if _, err := ParseParticipantID(""); err == nil {
		t.Error("Expected error parsing empty participant ID")
	}
	id, err := ParseParticipantID("9f1c2d3e")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id.String() != "9f1c2d3e" {
		t.Errorf("Expected '9f1c2d3e', got %q", id)
	}
}
