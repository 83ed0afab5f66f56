package search

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/searchlight/core"
)

const (
	// MaxHighlights caps the number of highlight spans per result.
	MaxHighlights = 10

	excerptLength  = 200
	excerptContext = 50

	ellipsis = "…"
)

// buildResult turns a matched record and the original query text into a
// presentable result carrying the matcher's score.
func buildResult(record *core.IndexRecord, queryText string, score float64) *core.SearchResult {
	highlights := extractHighlights(record.Content, queryText)

	return &core.SearchResult{
		ID:         record.ID,
		Type:       record.Type,
		Title:      resultTitle(record),
		Content:    record.Content,
		Excerpt:    buildExcerpt(record.Content, highlights),
		Score:      score,
		Highlights: highlights,
		Meta: core.ResultMetadata{
			Author:     record.Meta.Author,
			CreatedAt:  record.Meta.CreatedAt,
			ModifiedAt: record.LastIndexed,
			Tags:       record.Meta.Tags,
			Category:   record.Meta.Category,
			Size:       len(record.Content),
		},
	}
}

func resultTitle(record *core.IndexRecord) string {
	if record.Meta.Title != "" {
		return record.Meta.Title
	}
	return "Untitled " + record.Type.String()
}

// extractHighlights collects byte-offset spans of every case-insensitive
// occurrence of each query term in content, up to MaxHighlights spans across
// all terms, sorted by ascending start offset.
//
// Matching walks content rune by rune rather than searching a lowercased
// copy: case mapping can change a rune's byte length (U+0130 shrinks under
// ToLower), so offsets into a lowered copy would drift off the original.
func extractHighlights(content, queryText string) []core.Highlight {
	terms := core.Tokenize(queryText)
	if len(terms) == 0 {
		return nil
	}

	highlights := make([]core.Highlight, 0, MaxHighlights)

	for _, term := range terms {
		termRunes := []rune(term)
		pos := 0
		for len(highlights) < MaxHighlights {
			start, end := indexFold(content, termRunes, pos)
			if start < 0 {
				break
			}
			highlights = append(highlights, core.Highlight{
				Start: start,
				End:   end,
				Text:  content[start:end],
			})
			pos = end
		}
		if len(highlights) == MaxHighlights {
			break
		}
	}

	slices.SortStableFunc(highlights, func(a, b core.Highlight) int {
		return a.Start - b.Start
	})
	if len(highlights) == 0 {
		return nil
	}
	return highlights
}

// indexFold locates the first case-insensitive occurrence of term (already
// lowercased) in s at or after byte offset from, returning the byte span in
// s, or (-1, -1) when absent.
func indexFold(s string, term []rune, from int) (int, int) {
	if len(term) == 0 {
		return -1, -1
	}
	for i := from; i < len(s); {
		_, size := utf8.DecodeRuneInString(s[i:])
		if end, ok := matchFoldAt(s, i, term); ok {
			return i, end
		}
		i += size
	}
	return -1, -1
}

// matchFoldAt reports whether the runes of s starting at byte offset start
// case-fold-match term, and if so the byte offset just past the match.
func matchFoldAt(s string, start int, term []rune) (int, bool) {
	i := start
	for _, tr := range term {
		if i >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.ToLower(r) != tr {
			return 0, false
		}
		i += size
	}
	return i, true
}

// buildExcerpt produces a bounded snippet of content. Without highlights it
// is a prefix of the content; otherwise a window around the first highlight
// with excerptContext bytes of context on each side. Window edges are backed
// off to rune boundaries so multi-byte runes are never split.
func buildExcerpt(content string, highlights []core.Highlight) string {
	if len(highlights) == 0 {
		if len(content) <= excerptLength {
			return content
		}
		return content[:runeFloor(content, excerptLength)] + ellipsis
	}

	first := highlights[0]
	start := max(first.Start-excerptContext, 0)
	end := min(first.End+excerptContext, len(content))
	start = runeFloor(content, start)
	end = runeFloor(content, end)

	excerpt := content[start:end]
	if start > 0 {
		excerpt = ellipsis + excerpt
	}
	if end < len(content) {
		excerpt = excerpt + ellipsis
	}
	return excerpt
}

// runeFloor returns the largest offset <= pos that starts a rune.
func runeFloor(s string, pos int) int {
	for pos > 0 && pos < len(s) && !utf8.RuneStart(s[pos]) {
		pos--
	}
	return pos
}
