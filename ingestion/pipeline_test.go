package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/persearch/core"
	"github.com/poiesic/persearch/es"
)

// indexCapture records every PUT the pipeline issues.
type indexCapture struct {
	mu     sync.Mutex
	paths  []string
	status int
}

func (c *indexCapture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.paths = append(c.paths, r.Method+" "+r.URL.Path)
	c.mu.Unlock()

	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"result":"created"}`))
}

func newTestPipeline(t *testing.T, capture *indexCapture) *Pipeline {
	t.Helper()

	server := httptest.NewServer(capture)
	t.Cleanup(server.Close)

	client, err := es.NewClient(server.URL)
	require.NoError(t, err)

	pipeline, err := NewPipeline(client, "nku_index", WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline
}

func TestNewPipelineValidation(t *testing.T) {
	client, err := es.NewClient("http://localhost:9200")
	require.NoError(t, err)

	_, err = NewPipeline(nil, "nku_index")
	assert.ErrorIs(t, err, ErrClientRequired)

	_, err = NewPipeline(client, "")
	assert.ErrorIs(t, err, ErrIndexNameRequired)
}

func TestIndexRecords(t *testing.T) {
	capture := &indexCapture{}
	pipeline := newTestPipeline(t, capture)

	records := []CrawlRecord{
		{URL: "https://example.edu/a", Title: "A", PageRank: 0.5},
		{URL: "https://example.edu/b", Title: "B", PageRank: 0.1},
	}

	report, err := pipeline.IndexRecords(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Indexed)
	assert.Equal(t, 0, report.Failed)

	capture.mu.Lock()
	defer capture.mu.Unlock()
	require.Len(t, capture.paths, 2)
	assert.Contains(t, capture.paths, "PUT /nku_index/_doc/"+core.IDFromURL("https://example.edu/a"))
	assert.Contains(t, capture.paths, "PUT /nku_index/_doc/"+core.IDFromURL("https://example.edu/b"))
}

func TestIndexRecordsStableIDs(t *testing.T) {
	capture := &indexCapture{}
	pipeline := newTestPipeline(t, capture)

	record := CrawlRecord{URL: "https://example.edu/a", Title: "A"}

	_, err := pipeline.IndexRecords(context.Background(), []CrawlRecord{record})
	require.NoError(t, err)
	_, err = pipeline.IndexRecords(context.Background(), []CrawlRecord{record})
	require.NoError(t, err)

	capture.mu.Lock()
	defer capture.mu.Unlock()
	require.Len(t, capture.paths, 2)
	// Same URL, same document: the second run overwrites the first.
	assert.Equal(t, capture.paths[0], capture.paths[1])
}

func TestIndexRecordsSkipsMissingURL(t *testing.T) {
	capture := &indexCapture{}
	pipeline := newTestPipeline(t, capture)

	records := []CrawlRecord{
		{URL: "", Title: "orphan"},
		{URL: "https://example.edu/a", Title: "A"},
	}

	report, err := pipeline.IndexRecords(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Indexed)
	assert.Equal(t, 1, report.Failed)
}

func TestIndexRecordsCountsServerFailures(t *testing.T) {
	capture := &indexCapture{status: http.StatusInternalServerError}
	pipeline := newTestPipeline(t, capture)

	report, err := pipeline.IndexRecords(context.Background(), []CrawlRecord{
		{URL: "https://example.edu/a", Title: "A"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Indexed)
	assert.Equal(t, 1, report.Failed)
}

func TestLoadCrawlRecords(t *testing.T) {
	feed := `[
		{
			"url": "https://example.edu/a",
			"title": "A",
			"keywords": ["alpha", "beta"],
			"description": "first page",
			"html_filename": "a.html",
			"content": "body text",
			"pr": 0.42
		}
	]`

	path := filepath.Join(t.TempDir(), "feed.json")
	require.NoError(t, os.WriteFile(path, []byte(feed), 0o644))

	records, err := LoadCrawlRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].Title)
	assert.Equal(t, []string{"alpha", "beta"}, records[0].Keywords)
	assert.Equal(t, "a.html", records[0].HTMLFilename)
	assert.Equal(t, 0.42, records[0].PageRank)
}

func TestLoadCrawlRecordsErrors(t *testing.T) {
	_, err := LoadCrawlRecords(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = LoadCrawlRecords(path)
	assert.Error(t, err)
}

func TestIndexFeed(t *testing.T) {
	capture := &indexCapture{}
	pipeline := newTestPipeline(t, capture)

	feed := `[{"url": "https://example.edu/a", "title": "A"}]`
	path := filepath.Join(t.TempDir(), "feed.json")
	require.NoError(t, os.WriteFile(path, []byte(feed), 0o644))

	report, err := pipeline.IndexFeed(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Indexed)
}

func TestEnsureIndex(t *testing.T) {
	var mu sync.Mutex
	var calls []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()

		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := es.NewClient(server.URL)
	require.NoError(t, err)

	pipeline, err := NewPipeline(client, "nku_index")
	require.NoError(t, err)
	defer pipeline.Release()

	require.NoError(t, pipeline.EnsureIndex(context.Background()))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"HEAD /nku_index", "PUT /nku_index"}, calls)
}
