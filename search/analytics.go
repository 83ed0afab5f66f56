package search

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/searchlight/core"
	"github.com/poiesic/searchlight/storage"
)

// MaxPopularQueries caps the reported popular-query list.
const MaxPopularQueries = 20

// Recorder tracks search usage: query volume, response latency, popular
// queries, and queries that genuinely returned nothing. It does not influence
// ranking.
//
// Updates are serialized by a mutex so concurrent searches never lose counts.
// Every mutation schedules a best-effort persistence write on a single-worker
// pool; errors are logged and the in-memory state stays authoritative.
type Recorder struct {
	mu        sync.Mutex
	total     uint64
	averageMs float64
	popular   map[string]int
	noResults map[string]struct{}

	kv          storage.KV
	persistPool *ants.Pool
	logger      *slog.Logger
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder) error

// WithRecorderLogger sets a custom logger.
// Default is slog.Default().
func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecorder creates an analytics recorder persisting through kv.
func NewRecorder(kv storage.KV, opts ...RecorderOption) (*Recorder, error) {
	if kv == nil {
		return nil, ErrKVRequired
	}

	persistPool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		popular:     make(map[string]int),
		noResults:   make(map[string]struct{}),
		kv:          kv,
		persistPool: persistPool,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			persistPool.Release()
			return nil, err
		}
	}

	return r, nil
}

// RecordSearch registers one completed search call. failed marks calls that
// degraded to an empty result set because of an internal error; those still
// count toward volume and latency but are excluded from the no-results set,
// which is reserved for genuinely empty results.
func (r *Recorder) RecordSearch(query string, elapsed time.Duration, resultCount int, failed bool) {
	query = truncateQuery(query)

	r.mu.Lock()

	r.total++
	latest := float64(elapsed) / float64(time.Millisecond)
	n := float64(r.total)
	r.averageMs = (r.averageMs*(n-1) + latest) / n

	r.popular[query]++

	if resultCount == 0 && !failed {
		r.noResults[query] = struct{}{}
	}

	r.mu.Unlock()

	r.schedulePersist()
}

// Snapshot returns a copy of the current analytics. The popular-query list is
// sorted by count descending and capped at MaxPopularQueries.
func (r *Recorder) Snapshot() *core.Analytics {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Recorder) snapshotLocked() *core.Analytics {
	popular := make([]core.QueryCount, 0, len(r.popular))
	for query, count := range r.popular {
		popular = append(popular, core.QueryCount{Query: query, Count: count})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].Count != popular[j].Count {
			return popular[i].Count > popular[j].Count
		}
		return popular[i].Query < popular[j].Query
	})
	if len(popular) > MaxPopularQueries {
		popular = popular[:MaxPopularQueries]
	}

	noResults := make([]string, 0, len(r.noResults))
	for query := range r.noResults {
		noResults = append(noResults, query)
	}
	slices.Sort(noResults)

	return &core.Analytics{
		TotalSearches:       r.total,
		AverageResponseTime: r.averageMs,
		PopularQueries:      popular,
		NoResultsQueries:    noResults,
	}
}

// Clear resets all analytics state.
func (r *Recorder) Clear(ctx context.Context) {
	r.mu.Lock()
	r.total = 0
	r.averageMs = 0
	r.popular = make(map[string]int)
	r.noResults = make(map[string]struct{})
	r.mu.Unlock()

	r.schedulePersist()
}

// LoadFrom restores analytics from the persisted blob.
// An absent key means empty initial state, not an error.
func (r *Recorder) LoadFrom(ctx context.Context) error {
	data, found, err := r.kv.Get(ctx, storage.KeyAnalytics)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	analytics, err := storage.UnmarshalAnalytics(data)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = analytics.TotalSearches
	r.averageMs = analytics.AverageResponseTime
	r.popular = make(map[string]int, len(analytics.PopularQueries))
	for _, qc := range analytics.PopularQueries {
		r.popular[qc.Query] = qc.Count
	}
	r.noResults = make(map[string]struct{}, len(analytics.NoResultsQueries))
	for _, query := range analytics.NoResultsQueries {
		r.noResults[query] = struct{}{}
	}
	return nil
}

// Flush blocks until every scheduled persistence write has completed.
func (r *Recorder) Flush() {
	var wg sync.WaitGroup
	wg.Add(1)
	if err := r.persistPool.Submit(wg.Done); err != nil {
		wg.Done()
	}
	wg.Wait()
}

// Release drains pending writes and releases the worker pool.
// The recorder should not be used after calling Release.
func (r *Recorder) Release() {
	r.Flush()
	r.persistPool.Release()
}

func (r *Recorder) schedulePersist() {
	err := r.persistPool.Submit(func() {
		r.mu.Lock()
		snapshot := r.snapshotLocked()
		r.mu.Unlock()

		data := storage.MarshalAnalytics(snapshot)
		if err := r.kv.Put(context.Background(), storage.KeyAnalytics, data); err != nil {
			r.logger.Error("error persisting analytics", "err", err)
		}
	})
	if err != nil {
		r.logger.Error("error scheduling analytics persistence", "err", err)
	}
}

// truncateQuery bounds query strings kept in analytics so a pathological
// query cannot bloat the persisted blob.
func truncateQuery(query string) string {
	const maxLen = 256
	if len(query) <= maxLen {
		return query
	}
	return strings.ToValidUTF8(query[:maxLen], "")
}
