package search

import (
	"testing"

	"github.com/poiesic/searchlight/core"
	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"hello", "hello", 0},
		{"helo", "hello", 1},
		{"gumbo", "gambol", 2},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, levenshtein(c.a, c.b), "levenshtein(%q, %q)", c.a, c.b)
	}
}

func TestSimilarity(t *testing.T) {
	// 1 - distance/max(len)
	assert.InDelta(t, 0.8, similarity("helo", "hello"), 1e-9)
	assert.InDelta(t, 1.0, similarity("same", "same"), 1e-9)
	assert.InDelta(t, 1.0, similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, similarity("abc", "xyz"), 1e-9)
}

func TestCountWholeWords(t *testing.T) {
	t.Run("matches bounded words only", func(t *testing.T) {
		assert.Equal(t, 2, countWholeWords("the cat and the dog", "the"))
		assert.Equal(t, 0, countWholeWords("theme theater", "the"))
	})

	t.Run("content boundaries count as word boundaries", func(t *testing.T) {
		assert.Equal(t, 1, countWholeWords("fox", "fox"))
		assert.Equal(t, 2, countWholeWords("fox, fox!", "fox"))
	})

	t.Run("non-overlapping", func(t *testing.T) {
		assert.Equal(t, 2, countWholeWords("aa aa", "aa"))
	})

	t.Run("empty term", func(t *testing.T) {
		assert.Equal(t, 0, countWholeWords("anything", ""))
	})
}

func record(content string, tokens ...string) *core.IndexRecord {
	if tokens == nil {
		tokens = core.Tokenize(content)
	}
	return &core.IndexRecord{
		ID:      "r1",
		Type:    core.ContentTypeDocument,
		Content: content,
		Tokens:  tokens,
	}
}

func TestKeywordScore(t *testing.T) {
	weights := DefaultWeights()

	t.Run("substring occurrences score five points each", func(t *testing.T) {
		score := keywordScore(record("fox fox fox"), []string{"fox"}, core.SearchOptions{}, weights)
		assert.Equal(t, 15.0, score)
	})

	t.Run("whole word occurrences score ten points each", func(t *testing.T) {
		opts := core.SearchOptions{WholeWords: true}
		score := keywordScore(record("fox foxes fox"), []string{"fox"}, opts, weights)
		assert.Equal(t, 20.0, score)
	})

	t.Run("more occurrences never score lower", func(t *testing.T) {
		few := keywordScore(record("fox and hound"), []string{"fox"}, core.SearchOptions{}, weights)
		many := keywordScore(record("fox fox fox fox"), []string{"fox"}, core.SearchOptions{}, weights)
		assert.Greater(t, many, few)
	})

	t.Run("case insensitive by default", func(t *testing.T) {
		score := keywordScore(record("The Fox"), []string{"fox"}, core.SearchOptions{}, weights)
		assert.Equal(t, 5.0, score)
	})

	t.Run("case sensitive compares raw case", func(t *testing.T) {
		opts := core.SearchOptions{CaseSensitive: true}
		assert.Zero(t, keywordScore(record("The Fox"), []string{"fox"}, opts, weights))
		assert.Equal(t, 5.0, keywordScore(record("The Fox"), []string{"Fox"}, opts, weights))
	})

	t.Run("fuzzy bonus above threshold", func(t *testing.T) {
		rec := record("hello world")
		opts := core.SearchOptions{Fuzzy: true}

		// "worlds" vs token "world": similarity 1-1/6, above 0.8.
		score := keywordScore(rec, []string{"worlds"}, opts, weights)
		assert.InDelta(t, (1.0-1.0/6.0)*weights.Fuzzy, score, 1e-9)
	})

	t.Run("fuzzy bonus at threshold excluded", func(t *testing.T) {
		rec := record("hello world")
		opts := core.SearchOptions{Fuzzy: true}

		// "worl" occurs as a substring, so exact scoring wins; "wrldx" vs
		// "world" has similarity 1-2/5=0.6; "worl" without substring match
		// is covered via "wrld" whose similarity is exactly 0.8.
		score := keywordScore(rec, []string{"wrld"}, opts, weights)
		assert.Zero(t, score, "similarity exactly at the threshold gets no bonus")
	})

	t.Run("fuzzy disabled yields zero for near misses", func(t *testing.T) {
		rec := record("greetings hello world")
		score := keywordScore(rec, []string{"greetingz"}, core.SearchOptions{}, weights)
		assert.Zero(t, score)
	})

	t.Run("fuzzy enabled scores near miss", func(t *testing.T) {
		rec := record("greetings hello world")
		opts := core.SearchOptions{Fuzzy: true}
		score := keywordScore(rec, []string{"greetingz"}, opts, weights)
		// similarity 1 - 1/9 vs "greetings", above 0.8
		assert.InDelta(t, (1.0-1.0/9.0)*weights.Fuzzy, score, 1e-9)
	})

	t.Run("title containing term doubles its contribution", func(t *testing.T) {
		rec := record("fox content")
		rec.Meta.Title = "All About Foxes"
		score := keywordScore(rec, []string{"fox"}, core.SearchOptions{}, DefaultWeights())
		assert.Equal(t, 10.0, score)
	})

	t.Run("contributions sum across terms", func(t *testing.T) {
		rec := record("quick brown fox")
		score := keywordScore(rec, []string{"quick", "fox"}, core.SearchOptions{}, weights)
		assert.Equal(t, 10.0, score)
	})
}
