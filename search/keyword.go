package search

import (
	"strings"
	"unicode/utf8"

	"github.com/poiesic/searchlight/core"
)

// queryTerms tokenizes query text with the same rules content is tokenized
// with. With caseSensitive set, the original case of the terms is preserved
// and matching compares raw case.
func queryTerms(text string, caseSensitive bool) []string {
	if caseSensitive {
		return core.TokenizeRaw(text)
	}
	return core.Tokenize(text)
}

// keywordScore computes a record's relevance as the sum of per-term
// contributions. A record scoring 0 overall does not match.
func keywordScore(record *core.IndexRecord, terms []string, opts core.SearchOptions, weights Weights) float64 {
	content := record.Content
	if !opts.CaseSensitive {
		content = strings.ToLower(content)
	}
	titleLower := strings.ToLower(record.Meta.Title)

	var total float64
	for _, term := range terms {
		var contribution float64
		if opts.WholeWords {
			contribution = float64(countWholeWords(content, term)) * weights.WholeWord
		} else {
			contribution = float64(strings.Count(content, term)) * weights.Substring
		}

		if contribution == 0 && opts.Fuzzy {
			if sim := bestTokenSimilarity(term, record.Tokens); sim > weights.FuzzyThreshold {
				contribution = sim * weights.Fuzzy
			}
		}

		if strings.Contains(titleLower, strings.ToLower(term)) {
			contribution *= weights.TitleBoost
		}

		total += contribution
	}
	return total
}

// countWholeWords counts non-overlapping occurrences of term in content that
// are delimited by non-word runes or the content boundaries.
func countWholeWords(content, term string) int {
	if term == "" {
		return 0
	}

	var count int
	pos := 0
	for {
		idx := strings.Index(content[pos:], term)
		if idx < 0 {
			return count
		}
		start := pos + idx
		end := start + len(term)

		if wordBoundaryBefore(content, start) && wordBoundaryAfter(content, end) {
			count++
			pos = end
		} else {
			pos = start + 1
		}
	}
}

func wordBoundaryBefore(content string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(content[:start])
	return !core.IsWordRune(r)
}

func wordBoundaryAfter(content string, end int) bool {
	if end == len(content) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(content[end:])
	return !core.IsWordRune(r)
}

// bestTokenSimilarity returns the highest normalized edit-distance similarity
// between term and any of the record's tokens: 1 - distance/max(len).
func bestTokenSimilarity(term string, tokens []string) float64 {
	var best float64
	for _, token := range tokens {
		if sim := similarity(term, token); sim > best {
			best = sim
		}
	}
	return best
}

func similarity(a, b string) float64 {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance between two strings: the minimum
// number of single-rune insertions, deletions, and substitutions (no
// transpositions). Classic dynamic programming over two rolling rows.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
