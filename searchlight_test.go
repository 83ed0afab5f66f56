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

package searchlight

import (
	"context"
	"testing"

	"github.com/poiesic/searchlight/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := New("", WithInMemory())
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestEngineIndexAndSearch(t *testing.T) {
	engine := newTestEngine(t)
	ctx := t.Context()

	require.NoError(t, engine.IndexContent(ctx, "guide", core.ContentTypeDocument,
		"a practical guide to beekeeping", core.Metadata{Title: "Beekeeping"}))
	require.NoError(t, engine.IndexContent(ctx, "memo", core.ContentTypeDocument,
		"quarterly budget memo", core.Metadata{Title: "Budget"}))

	t.Run("keyword search finds indexed content", func(t *testing.T) {
		results := engine.Search(ctx, &core.SearchQuery{Text: "beekeeping"})
		require.Len(t, results, 1)
		assert.Equal(t, "guide", results[0].ID)
		assert.Equal(t, "Beekeeping", results[0].Title)
		assert.NotEmpty(t, results[0].Highlights)
	})

	t.Run("semantic search finds the same content", func(t *testing.T) {
		query := &core.SearchQuery{
			Text:    "practical guide beekeeping",
			Options: core.SearchOptions{Semantic: true},
		}
		results := engine.Search(ctx, query)
		require.NotEmpty(t, results)
		assert.Equal(t, "guide", results[0].ID)
	})

	t.Run("removal takes effect immediately", func(t *testing.T) {
		engine.RemoveFromIndex(ctx, "memo")
		results := engine.Search(ctx, &core.SearchQuery{Text: "budget"})
		assert.Empty(t, results)
	})
}

func TestEngineStats(t *testing.T) {
	engine := newTestEngine(t)
	ctx := t.Context()

	require.NoError(t, engine.IndexContent(ctx, "doc-1", core.ContentTypeDocument, "first document", core.Metadata{}))
	require.NoError(t, engine.IndexContent(ctx, "com-1", core.ContentTypeComment, "nice article", core.Metadata{}))

	stats := engine.IndexStats()
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, 1, stats.CountsByType[core.ContentTypeDocument])
	assert.Equal(t, 1, stats.CountsByType[core.ContentTypeComment])
	assert.False(t, stats.LastIndexed.IsZero())

	engine.ClearIndex(ctx)
	assert.Zero(t, engine.IndexStats().TotalItems)
}

func TestEngineAnalytics(t *testing.T) {
	engine := newTestEngine(t)
	ctx := t.Context()

	require.NoError(t, engine.IndexContent(ctx, "doc", core.ContentTypeDocument, "searchable text", core.Metadata{}))

	engine.Search(ctx, &core.SearchQuery{Text: "searchable"})
	engine.Search(ctx, &core.SearchQuery{Text: "nonexistent"})

	analytics := engine.SearchAnalytics()
	assert.Equal(t, uint64(2), analytics.TotalSearches)
	assert.Equal(t, []string{"nonexistent"}, analytics.NoResultsQueries)

	engine.ClearAnalytics(ctx)
	assert.Zero(t, engine.SearchAnalytics().TotalSearches)
}

func TestEngineReindexAll(t *testing.T) {
	engine := newTestEngine(t)
	ctx := t.Context()

	require.NoError(t, engine.IndexContent(ctx, "stale", core.ContentTypeDocument, "stale content", core.Metadata{}))

	err := engine.ReindexAll(ctx, func(ctx context.Context) error {
		return engine.IndexContent(ctx, "fresh", core.ContentTypeDocument, "fresh content", core.Metadata{})
	})
	require.NoError(t, err)

	assert.Empty(t, engine.Search(ctx, &core.SearchQuery{Text: "stale"}))
	assert.Len(t, engine.Search(ctx, &core.SearchQuery{Text: "fresh"}), 1)
}

func TestEnginePersistenceAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := t.Context()

	engine, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, engine.IndexContent(ctx, "durable", core.ContentTypeDocument,
		"content that survives restarts", core.Metadata{Title: "Durable"}))
	engine.Search(ctx, &core.SearchQuery{Text: "survives"})
	engine.Indexer().Flush()
	require.NoError(t, engine.Close())

	reopened, err := New(dir)
	require.NoError(t, err)
	defer reopened.Close()

	results := reopened.Search(ctx, &core.SearchQuery{Text: "survives"})
	require.Len(t, results, 1)
	assert.Equal(t, "durable", results[0].ID)
	assert.Equal(t, "Durable", results[0].Title)

	analytics := reopened.SearchAnalytics()
	assert.Equal(t, uint64(2), analytics.TotalSearches, "the reopened engine counts the restored search plus its own")
}

func TestEngineRejectsInvalidInput(t *testing.T) {
	engine := newTestEngine(t)
	ctx := t.Context()

	assert.ErrorIs(t, engine.IndexContent(ctx, "", core.ContentTypeDocument, "content", core.Metadata{}),
		core.ErrEmptyID)
	assert.ErrorIs(t, engine.IndexContent(ctx, "id", core.ContentTypeDocument, "", core.Metadata{}),
		core.ErrEmptyContent)
	assert.ErrorIs(t, engine.IndexContent(ctx, "id", core.ContentType(99), "content", core.Metadata{}),
		core.ErrInvalidContentType)
}
