package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/persearch/core"
	"github.com/poiesic/persearch/es"
)

// Pipeline loads crawled pages into the search index. Documents are indexed
// concurrently through a worker pool; per-document failures are logged and
// counted but do not abort the batch.
type Pipeline struct {
	client *es.Client
	index  string
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent indexing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline targeting index.
func NewPipeline(client *es.Client, index string, opts ...Option) (*Pipeline, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	if index == "" {
		return nil, ErrIndexNameRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		client: client,
		index:  index,
		pool:   pool,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Report summarizes one indexing run.
type Report struct {
	Indexed int
	Failed  int
}

// EnsureIndex creates the target index with its mapping if it does not
// already exist.
func (p *Pipeline) EnsureIndex(ctx context.Context) error {
	return p.client.EnsureIndex(ctx, p.index, indexDefinition)
}

// IndexRecords indexes a batch of crawl records and blocks until the batch
// is fully processed. Document IDs are derived from the record URL, so
// re-running a feed overwrites prior versions of each page instead of
// duplicating them.
func (p *Pipeline) IndexRecords(ctx context.Context, records []CrawlRecord) (*Report, error) {
	var (
		wg      sync.WaitGroup
		indexed atomic.Int64
		failed  atomic.Int64
	)

	for _, record := range records {
		if record.URL == "" {
			p.logger.Warn("skipping record without url", "title", record.Title)
			failed.Add(1)
			continue
		}

		doc := es.Source{
			Title:        record.Title,
			Description:  record.Description,
			Keywords:     record.Keywords,
			Content:      record.Content,
			HTMLFilename: record.HTMLFilename,
			URL:          record.URL,
			PageRank:     record.PageRank,
		}
		id := core.IDFromURL(record.URL)

		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()

			if err := p.client.IndexDocument(ctx, p.index, id, doc); err != nil {
				p.logger.Error("error indexing document", "id", id, "url", doc.URL, "err", err)
				failed.Add(1)
				return
			}
			indexed.Add(1)
		}); err != nil {
			wg.Done()
			failed.Add(1)
			p.logger.Error("error submitting document for indexing", "id", id, "err", err)
		}
	}

	wg.Wait()

	report := &Report{
		Indexed: int(indexed.Load()),
		Failed:  int(failed.Load()),
	}
	p.logger.Info("indexing run complete", "index", p.index,
		"indexed", report.Indexed, "failed", report.Failed)

	return report, nil
}

// IndexFeed loads a crawl feed from path and indexes it.
func (p *Pipeline) IndexFeed(ctx context.Context, path string) (*Report, error) {
	records, err := LoadCrawlRecords(path)
	if err != nil {
		return nil, err
	}
	return p.IndexRecords(ctx, records)
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
