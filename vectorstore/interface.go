package vectorstore

import "context"

// VectorStore is a technology-agnostic interface for vector similarity
// search over the player document corpus. Only the search contract is part
// of this module; ingestion and index maintenance live elsewhere.
type VectorStore interface {
	// Search performs vector similarity search with optional filtering.
	Search(ctx context.Context, vector []float32, filter SearchFilter, limit int) ([]SearchResult, error)

	// Close releases any resources held by the vector store.
	Close() error
}

// SearchFilter defines filtering options for vector search.
type SearchFilter struct {
	// Metadata filters results by payload key-value pairs
	// (e.g. "position_name", "nationality_name").
	Metadata map[string]any

	// MinScore drops results below this similarity threshold (0.0-1.0).
	MinScore float32
}

// SearchResult represents a single result from vector similarity search.
type SearchResult struct {
	// ID is the unique identifier of the result.
	ID string

	// Score is the similarity score (0.0-1.0, higher is more similar).
	Score float32

	// Content is the text content associated with this vector.
	Content string

	// Metadata contains the remaining payload key-value pairs.
	Metadata map[string]any
}
