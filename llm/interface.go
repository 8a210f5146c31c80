// Package llm provides the generative-model client used for answer
// generation, translation, and query embedding.
package llm

import "context"

// Message is one chat turn sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces a free-form completion for a question, grounded by
// system instructions and prior history. Implementations must respect ctx
// deadlines; a timeout surfaces as an error, never an indefinite block.
type Generator interface {
	Complete(ctx context.Context, system string, history []Message, user string) (string, error)
}

// Embedder converts texts into vectors for similarity search.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}
