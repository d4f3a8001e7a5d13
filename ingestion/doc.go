// Package ingestion provides pipeline orchestration for loading crawled
// pages into the search index.
//
// The Pipeline type manages the indexing workflow for crawl feeds,
// including:
//   - Loading crawl records from the crawler's JSON feed
//   - Deriving stable document IDs from page URLs
//   - Indexing documents concurrently through a bounded worker pool
//   - Creating the target index with its mapping when missing
package ingestion
