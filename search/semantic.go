package search

import "math"

// semanticScale maps cosine similarity onto the 0-100 semantic score scale.
const semanticScale = 100

// semanticScore maps the cosine similarity of two embeddings onto the 0-100
// scale. Semantic scores are not comparable with keyword scores.
func semanticScore(query, record []float32) float64 {
	return cosineSimilarity(query, record) * semanticScale
}

// cosineSimilarity computes dot(a,b) / (||a|| * ||b||).
// A zero-norm vector yields similarity 0.
func cosineSimilarity(a, b []float32) float64 {
	n := min(len(a), len(b))

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
