package ingestion

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// CrawlRecord is one crawled page as produced by the crawler's JSON feed.
type CrawlRecord struct {
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	Keywords     []string `json:"keywords"`
	Description  string   `json:"description"`
	HTMLFilename string   `json:"html_filename"`
	Content      string   `json:"content"`
	PageRank     float64  `json:"pr"`
}

// LoadCrawlRecords reads a JSON array of crawl records from path.
func LoadCrawlRecords(path string) ([]CrawlRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading crawl feed: %w", err)
	}

	var records []CrawlRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding crawl feed: %w", err)
	}

	return records, nil
}
