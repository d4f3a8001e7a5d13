package profile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/persearch/core"
	"github.com/poiesic/persearch/storage"
)

// Store is the mutation-gated record of user behavioral signals.
// All methods are safe for concurrent use; mutations to a profile are applied
// in the order their callers acquire the lock.
type Store struct {
	mu     sync.RWMutex
	state  *core.SessionState
	repo   storage.SessionRepository
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewStore creates a store backed by repo, loading any previously persisted
// session state. A store that has never been persisted starts anonymous with
// no profiles.
func NewStore(ctx context.Context, repo storage.SessionRepository, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Store{
		repo:   repo,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	state, err := repo.LoadState(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session state: %w", err)
	}
	if state == nil {
		state = core.NewSessionState()
	}
	s.state = state

	return s, nil
}

// Login authenticates user and lazily creates their profile if none exists.
// Calling Login twice with the same user is idempotent: the existing profile
// is kept, never re-created.
func (s *Store) Login(ctx context.Context, user core.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Authenticated = true
	s.state.CurrentUser = &user
	s.ensureProfile(user.Username)
	s.persist(ctx)
}

// Logout clears the authentication state atomically. Profile data is kept:
// history and clicks are waiting at the next login.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Authenticated = false
	s.state.CurrentUser = nil
	s.persist(ctx)
}

// RecordSearch prepends query to the current user's search history,
// deduplicating (most recent occurrence wins) and truncating to
// core.MaxSearchHistory entries.
//
// While anonymous this is a silent no-op: anonymous search is not
// personalized, and the gate is not an error.
func (s *Store) RecordSearch(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Authenticated || s.state.CurrentUser == nil {
		return
	}

	p := s.ensureProfile(s.state.CurrentUser.Username)

	history := make([]string, 0, len(p.SearchHistory)+1)
	history = append(history, query)
	for _, q := range p.SearchHistory {
		if q != query {
			history = append(history, q)
		}
	}
	if len(history) > core.MaxSearchHistory {
		history = history[:core.MaxSearchHistory]
	}
	p.SearchHistory = history

	s.persist(ctx)
}

// RecordClick increments the click counter for docID on username's profile,
// starting at 1. It requires non-empty parameters, an authenticated session,
// and username matching the authenticated user; any violation is reported as
// a wrapped core.ErrInvalidClick and performs no mutation. Callers treat the
// failure as a recoverable no-op.
func (s *Store) RecordClick(ctx context.Context, username, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := core.ValidateClick(username, docID); err != nil {
		s.logger.Warn("click rejected", "err", err)
		return err
	}
	if !s.state.Authenticated || s.state.CurrentUser == nil {
		err := fmt.Errorf("%w: %w", core.ErrInvalidClick, core.ErrNotAuthenticated)
		s.logger.Warn("click rejected", "username", username, "doc", docID, "err", err)
		return err
	}
	if username != s.state.CurrentUser.Username {
		err := fmt.Errorf("%w: %w", core.ErrInvalidClick, core.ErrUserMismatch)
		s.logger.Warn("click rejected", "username", username, "doc", docID, "err", err)
		return err
	}

	p := s.ensureProfile(username)
	p.ClickedDocuments[docID]++

	s.persist(ctx)
	return nil
}

// History returns a copy of username's search history, most recent first.
// Returns an empty slice if no profile exists.
func (s *Store) History(username string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.state.Users[username]
	if !ok {
		return []string{}
	}
	out := make([]string, len(p.SearchHistory))
	copy(out, p.SearchHistory)
	return out
}

// Clicks returns a copy of username's click counts.
// Returns an empty map if no profile exists.
func (s *Store) Clicks(username string) map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.state.Users[username]
	if !ok {
		return map[string]int{}
	}
	out := make(map[string]int, len(p.ClickedDocuments))
	for id, n := range p.ClickedDocuments {
		out[id] = n
	}
	return out
}

// Authenticated reports whether a user is logged in.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated
}

// CurrentUser returns the authenticated user, if any.
func (s *Store) CurrentUser() (core.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.state.Authenticated || s.state.CurrentUser == nil {
		return core.User{}, false
	}
	return *s.state.CurrentUser, true
}

// Profile returns a deep copy of username's profile, or nil if none exists.
func (s *Store) Profile(username string) *core.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Users[username].Clone()
}

// CurrentProfile returns a deep copy of the authenticated user's profile.
// Returns nil while anonymous, so downstream consumers degrade to
// unpersonalized behavior after a logout.
func (s *Store) CurrentProfile() *core.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.state.Authenticated || s.state.CurrentUser == nil {
		return nil
	}
	return s.state.Users[s.state.CurrentUser.Username].Clone()
}

// ensureProfile lazily creates a fully initialized profile for username.
// Caller must hold the write lock.
func (s *Store) ensureProfile(username string) *core.UserProfile {
	p, ok := s.state.Users[username]
	if !ok || p == nil {
		p = core.NewUserProfile()
		s.state.Users[username] = p
	}
	return p
}

// persist writes the session blob after a mutation. Persistence failures are
// local and non-fatal: they are logged, never surfaced, and never interrupt
// the session. Caller must hold the write lock.
func (s *Store) persist(ctx context.Context) {
	if err := s.repo.SaveState(ctx, s.state); err != nil {
		s.logger.Error("failed to persist session state", "err", err)
	}
}
