package es

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/poiesic/persearch/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		client, err := NewClient("http://localhost:9200")
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient("http://localhost:9200/")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:9200", client.baseURL)
	})

	t.Run("missing base url", func(t *testing.T) {
		_, err := NewClient("")
		assert.Equal(t, ErrBaseURLRequired, err)
	})

	t.Run("nil http client", func(t *testing.T) {
		_, err := NewClient("http://localhost:9200", WithHTTPClient(nil))
		assert.Equal(t, ErrNilHTTPClient, err)
	})
}

func TestSearch(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		io.WriteString(w, `{
			"took": 3,
			"hits": {"hits": [
				{"_id": "doc1", "_score": 4.2, "_source": {
					"title": "Campus news",
					"description": "Spring enrollment",
					"keywords": ["news", "campus"],
					"html_filename": "c216a541.html",
					"pr": 0.7
				}},
				{"_id": "doc2", "_score": 1.1, "_source": {"title": "Untitled"}}
			]}
		}`)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	resp, err := client.Search(context.Background(), "nku_index", query.BuildSearchQuery("news", 10))
	require.NoError(t, err)

	assert.Equal(t, "/nku_index/_search", gotPath)
	assert.Equal(t, float64(10), gotBody["size"])

	require.Len(t, resp.Hits.Hits, 2)
	first := resp.Hits.Hits[0]
	assert.Equal(t, "doc1", first.ID)
	assert.Equal(t, 4.2, first.Score)
	assert.Equal(t, "Campus news", first.Source.Title)
	assert.Equal(t, []string{"news", "campus"}, first.Source.Keywords)
	assert.Equal(t, "c216a541.html", first.Source.HTMLFilename)
	assert.Equal(t, 0.7, first.Source.PageRank)

	// Optional fields default to zero values.
	second := resp.Hits.Hits[1]
	assert.Empty(t, second.Source.Description)
	assert.Empty(t, second.Source.Keywords)
}

func TestSearch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "shard failure", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "nku_index", query.BuildSearchQuery("news", 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSearchFailed))
}

func TestSearch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "nku_index", query.BuildSearchQuery("news", 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSearchFailed))
}

func TestSearch_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"hits": {`)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "nku_index", query.BuildSearchQuery("news", 10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSearchFailed))
}

func TestIndexDocument(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	err = client.IndexDocument(context.Background(), "nku_index", "abc123", map[string]any{"title": "t"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/nku_index/_doc/abc123", gotPath)
}

func TestIndexDocument_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL)
	require.NoError(t, err)

	err = client.IndexDocument(context.Background(), "nku_index", "abc123", map[string]any{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIndexFailed))
}

func TestEnsureIndex(t *testing.T) {
	t.Run("already exists", func(t *testing.T) {
		var putCalled bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPut {
				putCalled = true
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL)
		require.NoError(t, err)

		require.NoError(t, client.EnsureIndex(context.Background(), "nku_index", map[string]any{}))
		assert.False(t, putCalled)
	})

	t.Run("created when missing", func(t *testing.T) {
		var putPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodHead:
				w.WriteHeader(http.StatusNotFound)
			case http.MethodPut:
				putPath = r.URL.Path
				w.WriteHeader(http.StatusOK)
			}
		}))
		defer srv.Close()

		client, err := NewClient(srv.URL)
		require.NoError(t, err)

		require.NoError(t, client.EnsureIndex(context.Background(), "nku_index", map[string]any{"settings": map[string]any{}}))
		assert.Equal(t, "/nku_index", putPath)
	})
}
