// Package retrieval turns a pivot-language question into a context block of
// player documents for the generator, via embedding and vector search.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/creastat/scoutchat/llm"
	"github.com/creastat/scoutchat/logger"
	"github.com/creastat/scoutchat/vectorstore"
)

// Retriever fetches player documents relevant to a question.
type Retriever interface {
	// Retrieve embeds the question and returns a formatted context block
	// of the most similar documents. An empty string means no documents
	// matched; the turn still proceeds without grounding.
	Retrieve(ctx context.Context, question string) (string, error)
}

// Config tunes the retrieval stage.
type Config struct {
	// TopK is the number of documents to fetch per question.
	TopK int

	// MinScore drops documents below this similarity threshold.
	MinScore float32
}

type retriever struct {
	embedder llm.Embedder
	store    vectorstore.VectorStore
	log      *logger.Logger
	topK     int
	minScore float32
}

// New creates a Retriever over the given embedder and vector store.
func New(embedder llm.Embedder, store vectorstore.VectorStore, cfg Config, log *logger.Logger) Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = 10
	}
	return &retriever{
		embedder: embedder,
		store:    store,
		log:      log.With("service", "Retriever"),
		topK:     cfg.TopK,
		minScore: cfg.MinScore,
	}
}

// Retrieve implements Retriever.
func (r *retriever) Retrieve(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", nil
	}

	vectors, err := r.embedder.Embed(ctx, []string{question})
	if err != nil {
		return "", fmt.Errorf("failed to embed question: %w", err)
	}
	if len(vectors) == 0 {
		return "", fmt.Errorf("embedder returned no vectors")
	}

	results, err := r.store.Search(ctx, vectors[0], vectorstore.SearchFilter{MinScore: r.minScore}, r.topK)
	if err != nil {
		return "", fmt.Errorf("vector search failed: %w", err)
	}

	r.log.Debug("retrieved documents", "count", len(results))
	return formatContext(results), nil
}

// formatContext renders search results as a numbered document block the
// generator can cite from. Results with empty content are skipped.
func formatContext(results []vectorstore.SearchResult) string {
	var b strings.Builder
	n := 0
	for _, res := range results {
		content := strings.TrimSpace(res.Content)
		if content == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "Document %d:\n%s\n\n", n, content)
	}
	return strings.TrimSpace(b.String())
}
