package search

import (
	"strings"
	"testing"
	"time"

	"github.com/poiesic/searchlight/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHighlights(t *testing.T) {
	t.Run("byte offsets into the original content", func(t *testing.T) {
		hs := extractHighlights("The fox and the Fox", "fox")
		require.Len(t, hs, 2)
		assert.Equal(t, core.Highlight{Start: 4, End: 7, Text: "fox"}, hs[0])
		assert.Equal(t, core.Highlight{Start: 16, End: 19, Text: "Fox"}, hs[1])
	})

	t.Run("sorted by start across terms", func(t *testing.T) {
		hs := extractHighlights("beta alpha beta alpha", "alpha beta")
		require.Len(t, hs, 4)
		for i := 1; i < len(hs); i++ {
			assert.LessOrEqual(t, hs[i-1].Start, hs[i].Start)
		}
	})

	t.Run("capped globally", func(t *testing.T) {
		content := strings.Repeat("fox ", 25)
		hs := extractHighlights(content, "fox")
		assert.Len(t, hs, MaxHighlights)
	})

	t.Run("no matches yields nil", func(t *testing.T) {
		assert.Nil(t, extractHighlights("nothing here", "absent"))
	})

	t.Run("short query terms are dropped", func(t *testing.T) {
		assert.Nil(t, extractHighlights("go go go", "go"))
	})

	t.Run("case folds that change byte length keep offsets exact", func(t *testing.T) {
		// U+0130 is two bytes but its lowercase form is one, so offsets into
		// a lowered copy would drift.
		content := "İstanbul is on the Bosphorus"
		hs := extractHighlights(content, "istanbul")
		require.Len(t, hs, 1)
		assert.Equal(t, 0, hs[0].Start)
		assert.Equal(t, len("İstanbul"), hs[0].End)
		assert.Equal(t, "İstanbul", hs[0].Text)
		assert.LessOrEqual(t, hs[0].End, len(content))

		excerpt := buildExcerpt(content, hs)
		assert.Equal(t, content, excerpt)
	})
}

func TestBuildExcerpt(t *testing.T) {
	t.Run("short content returned whole", func(t *testing.T) {
		assert.Equal(t, "short body", buildExcerpt("short body", nil))
	})

	t.Run("long content without highlights truncated with ellipsis", func(t *testing.T) {
		content := strings.Repeat("a", 300)
		excerpt := buildExcerpt(content, nil)
		assert.Equal(t, strings.Repeat("a", 200)+ellipsis, excerpt)
	})

	t.Run("window around first highlight", func(t *testing.T) {
		content := strings.Repeat("x", 100) + "needle" + strings.Repeat("y", 100)
		hs := extractHighlights(content, "needle")
		require.Len(t, hs, 1)

		excerpt := buildExcerpt(content, hs)
		assert.Equal(t, ellipsis+strings.Repeat("x", 50)+"needle"+strings.Repeat("y", 50)+ellipsis, excerpt)
	})

	t.Run("window clipped at content edges omits ellipsis", func(t *testing.T) {
		content := "needle" + strings.Repeat("y", 20)
		hs := extractHighlights(content, "needle")
		require.Len(t, hs, 1)
		assert.Equal(t, content, buildExcerpt(content, hs))
	})

	t.Run("never splits multi-byte runes", func(t *testing.T) {
		content := strings.Repeat("é", 150)
		excerpt := buildExcerpt(content, nil)
		assert.True(t, strings.HasSuffix(excerpt, ellipsis))
		for _, r := range excerpt {
			assert.NotEqual(t, '�', r)
		}
	})
}

func TestBuildResult(t *testing.T) {
	now := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rec := &core.IndexRecord{
		ID:      "doc-9",
		Type:    core.ContentTypeDocument,
		Content: "the quick brown fox",
		Meta: core.Metadata{
			Title:     "Foxes",
			Author:    "ada",
			CreatedAt: now.Add(-24 * time.Hour),
			Tags:      []string{"animals"},
			Category:  "nature",
		},
		LastIndexed: now,
	}

	result := buildResult(rec, "fox", 42.5)
	assert.Equal(t, "doc-9", result.ID)
	assert.Equal(t, "Foxes", result.Title)
	assert.Equal(t, 42.5, result.Score)
	assert.Equal(t, rec.Content, result.Content)
	require.Len(t, result.Highlights, 1)
	assert.Equal(t, "fox", result.Highlights[0].Text)
	assert.Equal(t, "ada", result.Meta.Author)
	assert.Equal(t, now, result.Meta.ModifiedAt)
	assert.Equal(t, len(rec.Content), result.Meta.Size)
}

func TestResultTitleFallback(t *testing.T) {
	rec := &core.IndexRecord{ID: "x", Type: core.ContentTypeComment, Content: "body"}
	assert.Equal(t, "Untitled comment", resultTitle(rec))
}
