package ports

import (
	"context"

	"gamblelab/domain/core"
	"gamblelab/domain/experiment"
)

// SessionStore holds live experiment sessions. Sessions are kept in memory
// only; the store exists so the web and API shells can address concurrent
// participants, each owning a fully independent Session value.
type SessionStore interface {
	// Create registers a new session
	Create(ctx context.Context, session *experiment.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id core.SessionID) (*experiment.Session, error)

	// Save persists updated session state
	Save(ctx context.Context, session *experiment.Session) error

	// Delete removes a session
	Delete(ctx context.Context, id core.SessionID) error

	// List returns all live sessions
	List(ctx context.Context) ([]*experiment.Session, error)
}
