package vectorstore

import (
	"context"

	"docwhisperer/internal/model"
)

// Storage indexes chunk texts with their metadata and retrieves the
// chunks most similar to a query. The similarity metric belongs to the
// backing store; this package only carries its insert/query contract.
// Implementations do not retry failed operations; callers decide
// whether to abort ingestion or continue in summary-only mode.
type Storage interface {
	// Insert adds chunks under their ID()s; re-insertion under the
	// same id replaces the prior entry.
	Insert(ctx context.Context, chunks []model.Chunk) error
	// Query returns up to topK chunks ordered most similar first, or
	// an empty slice when the store holds no chunks.
	Query(ctx context.Context, text string, topK int) ([]model.Chunk, error)
	// Sources returns the distinct document identifiers present.
	Sources(ctx context.Context) ([]string, error)
	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)
}
