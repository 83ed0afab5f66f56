package search

// Weights holds the scoring constants of the keyword and semantic matchers.
// The default values are inherited tuning constants with no documented
// rationale; they are kept overridable rather than treated as load-bearing.
type Weights struct {
	// WholeWord is the score per whole-word occurrence of a query term.
	WholeWord float64

	// Substring is the score per substring occurrence of a query term.
	Substring float64

	// Fuzzy multiplies the normalized similarity of the best fuzzy token
	// match when a term has no exact occurrences.
	Fuzzy float64

	// TitleBoost multiplies a term's contribution when the record title
	// contains the term.
	TitleBoost float64

	// FuzzyThreshold is the minimum normalized edit-distance similarity,
	// exclusive, for a fuzzy match to score at all.
	FuzzyThreshold float64

	// MinSemanticScore is the minimum semantic score, exclusive, on the
	// 0-100 scale for a record to appear in semantic results.
	MinSemanticScore float64
}

// DefaultWeights returns the inherited default scoring constants.
func DefaultWeights() Weights {
	return Weights{
		WholeWord:        10,
		Substring:        5,
		Fuzzy:            3,
		TitleBoost:       2,
		FuzzyThreshold:   0.8,
		MinSemanticScore: 30,
	}
}
