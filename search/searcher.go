package search

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/searchlight/ai"
	"github.com/poiesic/searchlight/core"
)

// Index is the read side of the index store the searcher matches against.
type Index interface {
	// Snapshot returns the current records. The records must be treated as
	// immutable.
	Snapshot() []*core.IndexRecord
}

// Searcher turns free-text queries into ranked, highlighted results.
type Searcher struct {
	index    Index
	embedder ai.Embedder
	recorder *Recorder
	weights  Weights
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithWeights overrides the default scoring constants.
func WithWeights(weights Weights) Option {
	return func(s *Searcher) error {
		s.weights = weights
		return nil
	}
}

// NewSearcher creates a new searcher over the given index.
func NewSearcher(index Index, embedder ai.Embedder, recorder *Recorder, opts ...Option) (*Searcher, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if recorder == nil {
		return nil, ErrRecorderRequired
	}

	s := &Searcher{
		index:    index,
		embedder: embedder,
		recorder: recorder,
		weights:  DefaultWeights(),
		logger:   slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search executes a query and returns results ranked by descending relevance.
//
// Search never fails from the caller's perspective: any internal error during
// matching is logged, recorded in analytics as an errored zero-result call,
// and degrades the call to an empty result list. The host renders "no
// results" either way.
func (s *Searcher) Search(ctx context.Context, query *core.SearchQuery) []*core.SearchResult {
	return s.SearchWithMonitor(ctx, query, nil)
}

// SearchWithMonitor executes a query with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query *core.SearchQuery, monitor SearchMonitor) []*core.SearchResult {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if query == nil {
		query = &core.SearchQuery{}
	}

	monitor.Start(query)
	start := time.Now()

	results, err := s.run(ctx, query, monitor)
	elapsed := time.Since(start)

	if err != nil {
		s.logger.Error("search failed, returning empty results", "query", query.Text, "err", err)
		s.recorder.RecordSearch(query.Text, elapsed, 0, true)
		results = []*core.SearchResult{}
		monitor.Finish(results)
		return results
	}

	s.recorder.RecordSearch(query.Text, elapsed, len(results), false)
	monitor.Finish(results)
	return results
}

// run executes the match -> filter -> sort -> build pipeline.
// A panic inside matching is converted to an error; a query must never take
// down the host application.
func (s *Searcher) run(ctx context.Context, query *core.SearchQuery, monitor SearchMonitor) (results []*core.SearchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during matching: %v", r)
		}
	}()

	var matched []scoredRecord
	if query.Options.Semantic {
		matched, err = s.matchSemantic(ctx, query)
		monitor.AfterMatch("semantic", len(matched))
	} else {
		matched = s.matchKeyword(query)
		monitor.AfterMatch("keyword", len(matched))
	}
	if err != nil {
		return nil, err
	}

	kept := matched[:0]
	for _, m := range matched {
		if matchesFilters(m.record, query.Filters) {
			kept = append(kept, m)
		}
	}
	monitor.AfterFilter(len(kept))

	// Descending score; equal scores tie-break on id ascending so ordering
	// is deterministic.
	slices.SortStableFunc(kept, func(a, b scoredRecord) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return strings.Compare(a.record.ID, b.record.ID)
		}
	})

	results = make([]*core.SearchResult, 0, len(kept))
	for _, m := range kept {
		results = append(results, buildResult(m.record, query.Text, m.score))
	}
	return results, nil
}

type scoredRecord struct {
	record *core.IndexRecord
	score  float64
}

// matchKeyword scores every record against the query terms; zero-scoring
// records do not match.
func (s *Searcher) matchKeyword(query *core.SearchQuery) []scoredRecord {
	terms := queryTerms(query.Text, query.Options.CaseSensitive)
	if len(terms) == 0 {
		return nil
	}

	var matched []scoredRecord
	for _, record := range s.index.Snapshot() {
		if score := keywordScore(record, terms, query.Options, s.weights); score > 0 {
			matched = append(matched, scoredRecord{record: record, score: score})
		}
	}
	return matched
}

// matchSemantic embeds the query and scores records by cosine similarity on
// the 0-100 scale. Records without an embedding are skipped; scores at or
// below the minimum similarity are excluded.
func (s *Searcher) matchSemantic(ctx context.Context, query *core.SearchQuery) ([]scoredRecord, error) {
	queryVector, err := s.embedder.EmbedText(ctx, query.Text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	var matched []scoredRecord
	for _, record := range s.index.Snapshot() {
		if len(record.Vector) == 0 {
			continue
		}
		if score := semanticScore(queryVector, record.Vector); score > s.weights.MinSemanticScore {
			matched = append(matched, scoredRecord{record: record, score: score})
		}
	}
	return matched, nil
}
