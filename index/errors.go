package index

import "errors"

var (
	// ErrStoreRequired is returned when a store is not provided.
	ErrStoreRequired = errors.New("store required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrKVRequired is returned when a key-value store is not provided.
	ErrKVRequired = errors.New("key-value store required")
)
