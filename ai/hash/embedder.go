package hash

import (
	"context"
	"math"
	"strings"

	"github.com/poiesic/searchlight/ai"
	"github.com/poiesic/searchlight/core"
)

// spreadPerToken is how many dimensions each token contributes to.
const spreadPerToken = 8

// Embedder is a deterministic, model-free ai.Embedder. It distributes a
// BLAKE2b hash of every token across the embedding dimensions and normalizes
// the result to a unit vector. The same text always produces the same vector,
// so it satisfies the embedding contract, but its notion of similarity is
// lexical rather than semantic and callers should treat results as approximate.
type Embedder struct{}

var _ ai.Embedder = (*Embedder)(nil)

// NewEmbedder creates a hash-based embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedText generates a deterministic embedding for a single text string.
// It never fails.
func (e *Embedder) EmbedText(_ context.Context, text string) ([]float32, error) {
	return embed(text), nil
}

// EmbedTexts generates deterministic embeddings for multiple texts.
func (e *Embedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = embed(text)
	}
	return vectors, nil
}

func embed(text string) []float32 {
	vector := make([]float32, ai.Dimensions)

	tokens := core.Tokenize(text)
	if len(tokens) == 0 {
		// Non-empty text must still produce a non-zero norm, even when every
		// token is below the minimum length.
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			tokens = []string{strings.ToLower(trimmed)}
		}
	}

	for _, token := range tokens {
		seed := core.IDFromContent(token)
		for i := 0; i < spreadPerToken; i++ {
			seed = seed*6364136223846793005 + 1442695040888963407 // LCG step
			dim := int(seed % ai.Dimensions)
			vector[dim] += float32((seed>>33)%1000)/1000.0 + 0.001
		}
	}

	normalize(vector)
	return vector
}

// normalize scales the vector to unit length in place. A zero vector is left
// unchanged.
func normalize(vector []float32) {
	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return
	}
	inv := 1.0 / math.Sqrt(sumSquares)
	for i := range vector {
		vector[i] = float32(float64(vector[i]) * inv)
	}
}
