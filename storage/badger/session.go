package badger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/persearch/core"
	"github.com/poiesic/persearch/storage"
)

// SessionRepository implements storage.SessionRepository for BadgerDB.
type SessionRepository struct {
	backend *Backend
}

var _ storage.SessionRepository = (*SessionRepository)(nil)

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(backend *Backend) *SessionRepository {
	return &SessionRepository{
		backend: backend,
	}
}

// LoadState retrieves the persisted session blob.
// Returns nil, nil if no state has ever been saved.
func (r *SessionRepository) LoadState(ctx context.Context) (*core.SessionState, error) {
	var state *core.SessionState
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSessionStateKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			state, unmarshalErr = storage.UnmarshalSessionState(val)
			if unmarshalErr != nil {
				return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, unmarshalErr)
			}
			return nil
		})
	}, false)

	if err != nil {
		return nil, err
	}
	if state != nil && state.Users == nil {
		state.Users = map[string]*core.UserProfile{}
	}
	return state, nil
}

// SaveState persists the session blob, replacing any previous value.
func (r *SessionRepository) SaveState(ctx context.Context, state *core.SessionState) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		value := storage.MarshalSessionState(state)
		if err := tx.Set(makeSessionStateKey(), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op: the repository owns no resources beyond the backend,
// which is closed by its owner.
func (r *SessionRepository) Close() error {
	return nil
}
