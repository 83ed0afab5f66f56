package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("lowercases and splits on non-word runes", func(t *testing.T) {
		tokens := Tokenize("The Quick-Brown FOX!")
		assert.Equal(t, []string{"the", "quick", "brown", "fox"}, tokens)
	})

	t.Run("drops tokens shorter than three characters", func(t *testing.T) {
		tokens := Tokenize("a of it dog")
		assert.Equal(t, []string{"dog"}, tokens)
	})

	t.Run("deduplicates preserving first occurrence order", func(t *testing.T) {
		tokens := Tokenize("dog cat dog bird cat")
		assert.Equal(t, []string{"dog", "cat", "bird"}, tokens)
	})

	t.Run("empty input yields empty sequence", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("  \t\n  "))
		assert.Empty(t, Tokenize("!!! ?? --"))
	})

	t.Run("keeps underscores and digits", func(t *testing.T) {
		tokens := Tokenize("snake_case v123")
		assert.Equal(t, []string{"snake_case", "v123"}, tokens)
	})

	t.Run("idempotent over its own output", func(t *testing.T) {
		inputs := []string{
			"The quick brown fox jumps over the lazy dog",
			"Hello, World! Hello again...",
			"MixedCASE tokens_with_underscores and 42numbers",
		}
		for _, input := range inputs {
			once := Tokenize(input)
			twice := Tokenize(strings.Join(once, " "))
			assert.Equal(t, once, twice, "input %q", input)
		}
	})
}

func TestTokenizeRaw(t *testing.T) {
	tokens := TokenizeRaw("The Quick FOX")
	assert.Equal(t, []string{"The", "Quick", "FOX"}, tokens)
}
