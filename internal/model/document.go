package model

import "time"

// Document is an ingested source file, keyed by its path.
// Re-ingesting the same path overwrites the prior entry.
type Document struct {
	Path       string    `json:"path"`
	Content    string    `json:"content"`
	IngestedAt time.Time `json:"ingested_at"`
	FileSize   int       `json:"file_size"`
}
