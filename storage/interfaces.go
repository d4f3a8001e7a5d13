package storage

import (
	"context"

	"github.com/poiesic/persearch/core"
)

// SessionRepository persists the session blob: authentication state plus the
// per-user profiles. Implementations must be thread-safe and support
// concurrent access.
//
// The blob is read once at startup and written after every profile mutation,
// so state survives process restarts. There is no merge logic: if two
// processes share one store, last write wins.
type SessionRepository interface {
	// LoadState retrieves the persisted session state.
	// Returns nil, nil if no state has ever been saved.
	LoadState(ctx context.Context) (*core.SessionState, error)

	// SaveState persists the session state, replacing any previous blob.
	SaveState(ctx context.Context, state *core.SessionState) error

	// Close closes the storage backend and releases resources.
	Close() error
}
