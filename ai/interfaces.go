package ai

import "context"

// Dimensions is the fixed length of every embedding vector produced and
// consumed by this module. Changing it invalidates all previously stored
// vectors and requires a full reindex.
const Dimensions = 128

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use, deterministic (the
// same text always yields the same vector), and must return vectors of exactly
// Dimensions elements with a non-zero norm for non-empty text.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
