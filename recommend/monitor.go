package recommend

import (
	"github.com/poiesic/persearch/core"
	"github.com/poiesic/persearch/query"
)

// Monitor receives callbacks at each stage of a recommendation flow. It is
// intended for diagnostics and debugging tools that need to inspect the
// intermediate state of a request.
type Monitor interface {
	// Start is called before any work begins, with the requested count.
	Start(count int)

	// AfterProfileLoad is called with the profile snapshot driving the
	// query. The profile is nil for anonymous sessions.
	AfterProfileLoad(p *core.UserProfile)

	// AfterQueryBuild is called with the fully constructed request before
	// it is sent to the index.
	AfterQueryBuild(req *query.SearchRequest)

	// AfterFetch is called with the raw hit count returned by the index,
	// before truncation.
	AfterFetch(hits int)

	// Finish is called with the final normalized recommendations.
	Finish(recs []core.Recommendation)
}

type noopMonitor struct{}

func (m *noopMonitor) Start(count int)                          {}
func (m *noopMonitor) AfterProfileLoad(p *core.UserProfile)     {}
func (m *noopMonitor) AfterQueryBuild(req *query.SearchRequest) {}
func (m *noopMonitor) AfterFetch(hits int)                      {}
func (m *noopMonitor) Finish(recs []core.Recommendation)        {}
