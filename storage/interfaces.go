package storage

import "context"

// Well-known keys under which the engine persists its state.
const (
	// KeyIndex holds the serialized index snapshot.
	KeyIndex = "search_index"

	// KeyAnalytics holds the serialized search analytics.
	KeyAnalytics = "search_analytics"
)

// KV is the key-value collaborator contract the engine persists through.
// Implementations must be thread-safe and support concurrent access.
//
// Persistence through a KV is best-effort: the engine's in-memory state stays
// authoritative for the lifetime of the process regardless of KV errors.
type KV interface {
	// Get retrieves the value stored under key.
	// The second return value is false when the key is absent; absence is
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Remove deletes the value stored under key.
	// Removing an absent key is a no-op.
	Remove(ctx context.Context, key string) error

	// Close closes the store and releases resources.
	Close() error
}
