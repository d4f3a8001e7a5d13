package ingestion

// indexDefinition is the mapping used when the target index is created.
// html_filename is a keyword so links round-trip untouched; pr carries the
// pre-computed page rank used as a secondary sort.
var indexDefinition = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"title":         map[string]any{"type": "text"},
			"description":   map[string]any{"type": "text"},
			"keywords":      map[string]any{"type": "text"},
			"content":       map[string]any{"type": "text"},
			"html_filename": map[string]any{"type": "keyword"},
			"url":           map[string]any{"type": "keyword"},
			"pr":            map[string]any{"type": "float"},
		},
	},
}
