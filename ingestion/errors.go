package ingestion

import "errors"

var (
	// ErrClientRequired is returned when a Pipeline is created without an
	// index client.
	ErrClientRequired = errors.New("index client is required")

	// ErrIndexNameRequired is returned when a Pipeline is created with an
	// empty index name.
	ErrIndexNameRequired = errors.New("index name is required")
)
