package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// MaxSearchHistory is the maximum number of queries retained in a profile's
// search history. Older entries are dropped once the bound is reached.
const MaxSearchHistory = 10

// User identifies an authenticated account.
type User struct {
	Username    string
	DisplayName string
}

// UserProfile holds the behavioral signals accumulated for one user.
// SearchHistory is ordered most-recent-first, deduplicated, and bounded to
// MaxSearchHistory entries. ClickedDocuments maps a document ID to a
// strictly positive click count.
type UserProfile struct {
	SearchHistory    []string
	ClickedDocuments map[string]int
}

// NewUserProfile returns an empty, fully initialized profile.
// A profile is never partially initialized: both fields are always present.
func NewUserProfile() *UserProfile {
	return &UserProfile{
		SearchHistory:    []string{},
		ClickedDocuments: map[string]int{},
	}
}

// ClickCount returns the recorded click count for a document, or 0.
func (p *UserProfile) ClickCount(docID string) int {
	if p == nil {
		return 0
	}
	return p.ClickedDocuments[docID]
}

// Searched reports whether term appears verbatim in the search history.
func (p *UserProfile) Searched(term string) bool {
	if p == nil {
		return false
	}
	for _, q := range p.SearchHistory {
		if q == term {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the profile.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	out := &UserProfile{
		SearchHistory:    make([]string, len(p.SearchHistory)),
		ClickedDocuments: make(map[string]int, len(p.ClickedDocuments)),
	}
	copy(out.SearchHistory, p.SearchHistory)
	for id, n := range p.ClickedDocuments {
		out.ClickedDocuments[id] = n
	}
	return out
}

// SessionState is the persisted session blob: the authentication state plus
// every known profile keyed by username. Profiles outlive logout.
type SessionState struct {
	Authenticated bool
	CurrentUser   *User
	Users         map[string]*UserProfile
}

// NewSessionState returns an anonymous state with no profiles.
func NewSessionState() *SessionState {
	return &SessionState{Users: map[string]*UserProfile{}}
}

// Document is one indexed page as seen by the client. PageRank is the static,
// query-independent importance score (the "pr" field of the index mapping);
// Score is the dynamic text-match score attached by the index per query.
type Document struct {
	ID           string
	Title        string
	Description  string
	Keywords     []string
	Content      string
	HTMLFilename string
	PageRank     float64
	Score        float64
}

// Recommendation is the normalized record handed to the display layer.
type Recommendation struct {
	ID          string
	Title       string
	Link        string
	Description string
	Keywords    []string
}

// IDFromURL derives a deterministic document identifier from a page URL using
// BLAKE2b hashing. Identical URLs always produce identical IDs, so indexing
// the same crawl twice overwrites instead of duplicating.
func IDFromURL(url string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(url))
	return hex.EncodeToString(h.Sum(nil))
}
