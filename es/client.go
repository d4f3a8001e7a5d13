package es

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/poiesic/persearch/query"
)

const defaultTimeout = 10 * time.Second

// Client talks to an Elasticsearch-compatible index over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return ErrNilHTTPClient
		}
		c.httpClient = hc
		return nil
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		c.httpClient.Timeout = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a client for the index at baseURL,
// e.g. "http://localhost:9200".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrBaseURLRequired
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Hit is one raw result returned by the index.
type Hit struct {
	ID     string  `json:"_id"`
	Score  float64 `json:"_score"`
	Source Source  `json:"_source"`
}

// Source is the stored document payload of a hit. Fields mirror the index
// mapping; description and keywords are optional on many pages.
type Source struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Content      string   `json:"content,omitempty"`
	HTMLFilename string   `json:"html_filename,omitempty"`
	URL          string   `json:"url,omitempty"`
	PageRank     float64  `json:"pr,omitempty"`
}

// SearchResponse is the decoded body of a _search call.
type SearchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Hits []Hit `json:"hits"`
	} `json:"hits"`
}

// Search posts req to /{index}/_search and decodes the response. Any
// transport or server error surfaces as a wrapped ErrSearchFailed; the
// client never retries.
func (c *Client) Search(ctx context.Context, index string, req *query.SearchRequest) (*SearchResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrSearchFailed, err)
	}

	url := fmt.Sprintf("%s/%s/_search", c.baseURL, index)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error("search request rejected", "index", index, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d: %s", ErrSearchFailed, resp.StatusCode, msg)
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrSearchFailed, err)
	}
	return &out, nil
}

// IndexDocument stores doc under id in index, creating or replacing it.
func (c *Client) IndexDocument(ctx context.Context, index, id string, doc any) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode document: %w", ErrIndexFailed, err)
	}

	url := fmt.Sprintf("%s/%s/_doc/%s", c.baseURL, index, id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrIndexFailed, resp.StatusCode)
	}
	return nil
}

// EnsureIndex creates index with the given settings/mappings body if it does
// not already exist.
func (c *Client) EnsureIndex(ctx context.Context, index string, definition any) error {
	url := fmt.Sprintf("%s/%s", c.baseURL, index)

	headReq, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexFailed, err)
	}
	resp, err := c.httpClient.Do(headReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexFailed, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}
	if resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: status %d", ErrIndexFailed, resp.StatusCode)
	}

	body, err := json.Marshal(definition)
	if err != nil {
		return fmt.Errorf("%w: encode index definition: %w", ErrIndexFailed, err)
	}
	putReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexFailed, err)
	}
	putReq.Header.Set("Content-Type", "application/json")

	resp, err = c.httpClient.Do(putReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIndexFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrIndexFailed, resp.StatusCode)
	}
	c.logger.Info("created index", "index", index)
	return nil
}
