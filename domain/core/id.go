package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// NewShortID creates an 8-character identifier, the form participants and
// gambles are labeled with in exported rows.
func NewShortID() ID {
	return ID(uuid.NewString()[:8])
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SessionID     ID
	ParticipantID ID
	GambleID      ID
)

// String conversions for domain IDs
func (id SessionID) String() string     { return ID(id).String() }
func (id ParticipantID) String() string { return ID(id).String() }
func (id GambleID) String() string      { return ID(id).String() }

// NewSessionID creates an identifier for a new experiment session.
func NewSessionID() SessionID {
	return SessionID(NewID())
}

// NewParticipantID issues the short participant label used across a session.
func NewParticipantID() ParticipantID {
	return ParticipantID(NewShortID())
}

// NewGambleID issues the short gamble label stamped on each sampled gamble.
func NewGambleID() GambleID {
	return GambleID(NewShortID())
}

// ParseSessionID parses a string into SessionID
func ParseSessionID(s string) (SessionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	return SessionID(s), nil
}

// ParseParticipantID parses a string into ParticipantID
func ParseParticipantID(s string) (ParticipantID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("participant ID cannot be empty")
	}
	return ParticipantID(s), nil
}
