// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package persearch

import (
	"context"
	"log/slog"

	"github.com/poiesic/persearch/es"
	"github.com/poiesic/persearch/ingestion"
	"github.com/poiesic/persearch/profile"
	"github.com/poiesic/persearch/recommend"
	"github.com/poiesic/persearch/storage"
	"github.com/poiesic/persearch/storage/badger"
)

// DefaultIndex is the index queried when no override is configured.
const DefaultIndex = "nku_index"

type Client struct {
	backend     *badger.Backend
	sessionRepo storage.SessionRepository
	store       *profile.Store
	search      *es.Client
	index       string
	logger      *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	index      string
	searchOpts []es.Option
	storeOpts  []profile.Option
}

// WithIndex overrides the index the client queries and seeds.
func WithIndex(index string) ClientOption {
	return func(o *clientOptions) {
		if index != "" {
			o.index = index
		}
	}
}

// WithSearchOptions forwards options to the underlying index client.
func WithSearchOptions(opts ...es.Option) ClientOption {
	return func(o *clientOptions) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithStoreOptions forwards options to the underlying profile store.
func WithStoreOptions(opts ...profile.Option) ClientOption {
	return func(o *clientOptions) {
		o.storeOpts = append(o.storeOpts, opts...)
	}
}

// NewClient opens the session database at filePath and connects to the
// search index at searchURL.
func NewClient(ctx context.Context, filePath, searchURL string, opts ...ClientOption) (*Client, error) {
	// Apply options
	options := &clientOptions{
		index: DefaultIndex,
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create session repository and load state into the profile store
	sessionRepo := badger.NewSessionRepository(backend)

	store, err := profile.NewStore(ctx, sessionRepo, options.storeOpts...)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Connect to the search index
	search, err := es.NewClient(searchURL, options.searchOpts...)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Client{
		backend:     backend,
		sessionRepo: sessionRepo,
		store:       store,
		search:      search,
		index:       options.index,
		logger:      slog.Default(),
	}, nil
}

func (c *Client) Close() error {
	if err := c.sessionRepo.Close(); err != nil {
		c.logger.Error("error closing session repository", "err", err)
		return err
	}

	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (c *Client) ProfileStore() *profile.Store {
	return c.store
}

func (c *Client) SearchClient() *es.Client {
	return c.search
}

func (c *Client) Index() string {
	return c.index
}

func (c *Client) NewRecommendService(opts ...recommend.Option) (*recommend.Service, error) {
	return recommend.NewService(c.store, c.search, c.index, opts...)
}

func (c *Client) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(c.search, c.index, opts...)
}
