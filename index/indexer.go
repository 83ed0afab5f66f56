package index

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/searchlight/ai"
	"github.com/poiesic/searchlight/core"
	"github.com/poiesic/searchlight/storage"
)

// Indexer owns the index store and keeps it persisted.
//
// Every mutation updates the in-memory store synchronously and schedules a
// best-effort snapshot write to the key-value collaborator on a single-worker
// pool, so persistence never blocks callers and writes never interleave.
// Persistence errors are logged, not surfaced; the in-memory state stays
// authoritative.
type Indexer struct {
	store       *Store
	embedder    ai.Embedder
	kv          storage.KV
	persistPool *ants.Pool
	reindexing  atomic.Bool
	logger      *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ix *Indexer) error {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
		return nil
	}
}

// NewIndexer creates a new indexer around the given store.
func NewIndexer(store *Store, embedder ai.Embedder, kv storage.KV, opts ...Option) (*Indexer, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if kv == nil {
		return nil, ErrKVRequired
	}

	// One worker: snapshot writes to the KV must not interleave.
	persistPool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	ix := &Indexer{
		store:       store,
		embedder:    embedder,
		kv:          kv,
		persistPool: persistPool,
		logger:      slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(ix); err != nil {
			persistPool.Release()
			return nil, err
		}
	}

	return ix, nil
}

// IndexContent tokenizes and embeds content and installs the resulting record,
// replacing any previous record with the same id. An embedding failure is
// logged and the record is stored without a vector; it stays reachable through
// keyword search and is skipped by semantic search.
func (ix *Indexer) IndexContent(ctx context.Context, id string, contentType core.ContentType, content string, meta core.Metadata) error {
	if err := core.ValidateRecordInput(id, contentType, content); err != nil {
		return err
	}

	vector, err := ix.embedder.EmbedText(ctx, content)
	if err != nil {
		ix.logger.Warn("embedding failed, indexing without vector", "id", id, "err", err)
		vector = nil
	} else if len(vector) != ai.Dimensions {
		ix.logger.Warn("embedder returned wrong dimensionality, indexing without vector",
			"id", id, "got", len(vector), "want", ai.Dimensions)
		vector = nil
	}

	ix.store.Put(&core.IndexRecord{
		ID:          id,
		Type:        contentType,
		Content:     content,
		Tokens:      core.Tokenize(content),
		Vector:      vector,
		Meta:        meta,
		LastIndexed: time.Now().UTC(),
	})

	ix.schedulePersist()
	return nil
}

// Remove deletes the record for id. Removing an absent id is a no-op.
func (ix *Indexer) Remove(ctx context.Context, id string) {
	if ix.store.Delete(id) {
		ix.schedulePersist()
	}
}

// ReindexAll clears the store and invokes populate, which is expected to
// re-enumerate all indexable content and call IndexContent for each item.
// populate may be nil when the host repopulates on its own schedule.
//
// ReindexAll is not reentrant: a second call while one is in progress is a
// no-op, so a concurrent caller cannot clear a store that is being
// repopulated.
func (ix *Indexer) ReindexAll(ctx context.Context, populate func(ctx context.Context) error) error {
	if !ix.reindexing.CompareAndSwap(false, true) {
		ix.logger.Info("reindex already in progress, skipping")
		return nil
	}
	defer ix.reindexing.Store(false)

	ix.logger.Info("reindexing, clearing store", "records", ix.store.Len())
	ix.store.Clear()
	ix.schedulePersist()

	if populate != nil {
		if err := populate(ctx); err != nil {
			ix.logger.Error("reindex population failed", "err", err)
			return err
		}
	}

	ix.schedulePersist()
	return nil
}

// Clear removes all records from the store.
func (ix *Indexer) Clear(ctx context.Context) {
	ix.store.Clear()
	ix.schedulePersist()
}

// Stats summarizes the current index contents.
func (ix *Indexer) Stats() core.IndexStats {
	return ix.store.Stats()
}

// LoadFrom restores the store from the persisted snapshot.
// An absent snapshot key means empty initial state, not an error.
func (ix *Indexer) LoadFrom(ctx context.Context) error {
	data, found, err := ix.kv.Get(ctx, storage.KeyIndex)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	records, err := storage.UnmarshalIndexSnapshot(data)
	if err != nil {
		return err
	}

	ix.store.Replace(records)
	ix.logger.Info("restored index snapshot", "records", len(records))
	return nil
}

// Flush blocks until every scheduled persistence write has completed.
// It exists for orderly shutdown and for tests.
func (ix *Indexer) Flush() {
	var wg sync.WaitGroup
	wg.Add(1)
	if err := ix.persistPool.Submit(wg.Done); err != nil {
		wg.Done()
	}
	wg.Wait()
}

// Release drains pending persistence writes and releases the worker pool.
// The indexer should not be used after calling Release.
func (ix *Indexer) Release() {
	ix.Flush()
	ix.persistPool.Release()
}

// schedulePersist queues a best-effort snapshot write. Errors are logged and
// swallowed.
func (ix *Indexer) schedulePersist() {
	err := ix.persistPool.Submit(func() {
		data := storage.MarshalIndexSnapshot(ix.store.SnapshotValues())
		if err := ix.kv.Put(context.Background(), storage.KeyIndex, data); err != nil {
			ix.logger.Error("error persisting index snapshot", "err", err)
		}
	})
	if err != nil {
		ix.logger.Error("error scheduling index persistence", "err", err)
	}
}
