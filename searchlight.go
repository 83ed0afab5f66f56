// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package searchlight is an embedded search engine for content-management
// hosts: it indexes documents, media descriptions, and comments, answers
// keyword and semantic queries with ranked, highlighted results, and tracks
// usage analytics. State lives in memory and is persisted through an embedded
// Badger store.
package searchlight

import (
	"context"
	"log/slog"

	"github.com/poiesic/searchlight/ai"
	"github.com/poiesic/searchlight/ai/hash"
	"github.com/poiesic/searchlight/ai/openai"
	"github.com/poiesic/searchlight/core"
	"github.com/poiesic/searchlight/index"
	"github.com/poiesic/searchlight/search"
	"github.com/poiesic/searchlight/storage/badger"
)

// Engine wires the index, searcher, and analytics recorder over a shared
// Badger backend.
type Engine struct {
	backend  *badger.Backend
	store    *index.Store
	indexer  *index.Indexer
	searcher *search.Searcher
	recorder *search.Recorder
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger   *slog.Logger
	embedder ai.Embedder
	weights  *search.Weights
	aiConfig *ai.Config
	inMemory bool
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEmbedder substitutes the embedder used for indexing and semantic
// queries. Default is the dependency-free hash embedder.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithEmbeddingService uses an OpenAI-compatible embedding endpoint instead
// of the hash embedder. Ignored when WithEmbedder is also given.
func WithEmbeddingService(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithWeights overrides the default ranking constants.
func WithWeights(weights search.Weights) EngineOption {
	return func(o *engineOptions) {
		o.weights = &weights
	}
}

// WithInMemory keeps the Badger backend entirely in memory. Intended for
// tests and ephemeral hosts; nothing survives Close.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// New opens (or creates) the engine state at filePath and restores any
// persisted index snapshot and analytics. A missing or unreadable snapshot
// starts the engine empty rather than failing: content can always be
// reindexed from the host's source of truth.
func New(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	embedder := options.embedder
	if embedder == nil && options.aiConfig != nil {
		var err error
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			return nil, err
		}
	}
	if embedder == nil {
		embedder = hash.NewEmbedder()
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}
	kv := badger.NewKV(backend)

	store := index.NewStore()
	indexer, err := index.NewIndexer(store, embedder, kv, index.WithLogger(options.logger))
	if err != nil {
		backend.Close()
		return nil, err
	}

	recorder, err := search.NewRecorder(kv, search.WithRecorderLogger(options.logger))
	if err != nil {
		indexer.Release()
		backend.Close()
		return nil, err
	}

	searchOpts := []search.Option{search.WithLogger(options.logger)}
	if options.weights != nil {
		searchOpts = append(searchOpts, search.WithWeights(*options.weights))
	}
	searcher, err := search.NewSearcher(store, embedder, recorder, searchOpts...)
	if err != nil {
		recorder.Release()
		indexer.Release()
		backend.Close()
		return nil, err
	}

	engine := &Engine{
		backend:  backend,
		store:    store,
		indexer:  indexer,
		searcher: searcher,
		recorder: recorder,
		logger:   options.logger,
	}

	ctx := context.Background()
	if err := indexer.LoadFrom(ctx); err != nil {
		engine.logger.Error("error restoring index snapshot, starting empty", "err", err)
	}
	if err := recorder.LoadFrom(ctx); err != nil {
		engine.logger.Error("error restoring analytics, starting empty", "err", err)
	}

	return engine, nil
}

// IndexContent adds or replaces the record for id.
func (e *Engine) IndexContent(ctx context.Context, id string, contentType core.ContentType, content string, meta core.Metadata) error {
	return e.indexer.IndexContent(ctx, id, contentType, content, meta)
}

// RemoveFromIndex deletes the record for id. Removing an absent id is a
// no-op.
func (e *Engine) RemoveFromIndex(ctx context.Context, id string) {
	e.indexer.Remove(ctx, id)
}

// ReindexAll clears the index and invokes populate to re-enumerate all
// indexable content. A concurrent call while one is in progress is a no-op.
func (e *Engine) ReindexAll(ctx context.Context, populate func(ctx context.Context) error) error {
	return e.indexer.ReindexAll(ctx, populate)
}

// Search executes a query and returns results ranked by descending
// relevance. It never fails; internal errors degrade to empty results.
func (e *Engine) Search(ctx context.Context, query *core.SearchQuery) []*core.SearchResult {
	return e.searcher.Search(ctx, query)
}

// SearchWithMonitor executes a query with stage callbacks.
func (e *Engine) SearchWithMonitor(ctx context.Context, query *core.SearchQuery, monitor search.SearchMonitor) []*core.SearchResult {
	return e.searcher.SearchWithMonitor(ctx, query, monitor)
}

// SearchAnalytics returns a snapshot of the accumulated usage analytics.
func (e *Engine) SearchAnalytics() *core.Analytics {
	return e.recorder.Snapshot()
}

// ClearAnalytics resets the accumulated analytics.
func (e *Engine) ClearAnalytics(ctx context.Context) {
	e.recorder.Clear(ctx)
}

// IndexStats summarizes the current index contents.
func (e *Engine) IndexStats() core.IndexStats {
	return e.indexer.Stats()
}

// ClearIndex removes all records from the index.
func (e *Engine) ClearIndex(ctx context.Context) {
	e.indexer.Clear(ctx)
}

// Indexer exposes the underlying indexer for hosts that need direct access.
func (e *Engine) Indexer() *index.Indexer {
	return e.indexer
}

// Searcher exposes the underlying searcher.
func (e *Engine) Searcher() *search.Searcher {
	return e.searcher
}

// Close drains pending persistence writes and closes the backend.
func (e *Engine) Close() error {
	e.indexer.Release()
	e.recorder.Release()

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
