package recommend

import (
	"context"
	"log/slog"

	"github.com/poiesic/persearch/core"
	"github.com/poiesic/persearch/es"
	"github.com/poiesic/persearch/profile"
	"github.com/poiesic/persearch/query"
	"github.com/poiesic/persearch/rank"
)

// Service orchestrates personalized search and recommendations: it reads the
// profile store, builds boosted queries, executes them against the index, and
// normalizes the hits for display.
type Service struct {
	store  *profile.Store
	client *es.Client
	index  string
	logger *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewService creates a new recommendation service over index.
func NewService(store *profile.Store, client *es.Client, index string, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if client == nil {
		return nil, ErrClientRequired
	}
	if index == "" {
		return nil, ErrIndexNameRequired
	}

	s := &Service{
		store:  store,
		client: client,
		index:  index,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Recommend returns up to count normalized recommendations for the current
// user.
func (s *Service) Recommend(ctx context.Context, count int) ([]core.Recommendation, error) {
	return s.RecommendWithMonitor(ctx, count, nil)
}

// RecommendWithMonitor returns recommendations with observation hooks at
// each stage of the flow.
//
// The profile is read once at the start; an anonymous session reads as a nil
// profile and yields the unpersonalized degenerate query, so a response that
// lands after a logout was never built from stale signals. The index returns
// up to query.RecommendationSize candidates, which are truncated to count and
// mapped to normalized records with defaults for missing description and
// keywords.
func (s *Service) RecommendWithMonitor(ctx context.Context, count int, monitor Monitor) ([]core.Recommendation, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(count)

	p := s.store.CurrentProfile()
	monitor.AfterProfileLoad(p)

	req := query.BuildRecommendationQuery(p)
	monitor.AfterQueryBuild(req)

	resp, err := s.client.Search(ctx, s.index, req)
	if err != nil {
		s.logger.Error("error fetching recommendations", "index", s.index, "err", err)
		return nil, err
	}

	hits := resp.Hits.Hits
	monitor.AfterFetch(len(hits))

	if count >= 0 && len(hits) > count {
		hits = hits[:count]
	}

	recs := make([]core.Recommendation, 0, len(hits))
	for _, hit := range hits {
		keywords := hit.Source.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		recs = append(recs, core.Recommendation{
			ID:          hit.ID,
			Title:       hit.Source.Title,
			Link:        hit.Source.HTMLFilename,
			Description: hit.Source.Description,
			Keywords:    keywords,
		})
	}

	monitor.Finish(recs)
	return recs, nil
}

// Search runs a full-text query for the current session. An authenticated
// search is recorded into the profile first; the fetched page is then
// re-sorted by profile weight before display. Anonymous searches record
// nothing and come back in index order.
func (s *Service) Search(ctx context.Context, text string, size int) ([]core.Document, error) {
	s.store.RecordSearch(ctx, text)

	resp, err := s.client.Search(ctx, s.index, query.BuildSearchQuery(text, size))
	if err != nil {
		s.logger.Error("error executing search", "index", s.index, "err", err)
		return nil, err
	}

	docs := make([]core.Document, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		docs = append(docs, core.Document{
			ID:           hit.ID,
			Title:        hit.Source.Title,
			Description:  hit.Source.Description,
			Keywords:     hit.Source.Keywords,
			Content:      hit.Source.Content,
			HTMLFilename: hit.Source.HTMLFilename,
			PageRank:     hit.Source.PageRank,
			Score:        hit.Score,
		})
	}

	return rank.ByProfile(docs, s.store.CurrentProfile()), nil
}

// RecordClick forwards a result click to the profile store so future
// recommendations demote the clicked document. Failures are recoverable
// no-ops for the caller.
func (s *Service) RecordClick(ctx context.Context, username, docID string) error {
	return s.store.RecordClick(ctx, username, docID)
}
