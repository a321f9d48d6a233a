package embedder

import "context"

// Embedder generates embedding vectors for texts. All vectors handed to
// one index must come from the same Embedder so their dot products stay
// comparable.
type Embedder interface {
	// Embed returns one vector per input text, same length and order
	// as the input, produced in a single batched provider call.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
	ModelInfo() string
}
