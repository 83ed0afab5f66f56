package search

import (
	"fmt"
	"strings"
	"testing"
	"time"

	badgerstore "github.com/poiesic/searchlight/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	kv, err := badgerstore.NewMemoryKV()
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	recorder, err := NewRecorder(kv)
	require.NoError(t, err)
	t.Cleanup(recorder.Release)
	return recorder
}

func TestNewRecorderRequiresKV(t *testing.T) {
	_, err := NewRecorder(nil)
	assert.ErrorIs(t, err, ErrKVRequired)
}

func TestRecorderTotals(t *testing.T) {
	recorder := newTestRecorder(t)

	recorder.RecordSearch("alpha", 10*time.Millisecond, 3, false)
	recorder.RecordSearch("beta", 30*time.Millisecond, 0, false)

	snapshot := recorder.Snapshot()
	assert.Equal(t, uint64(2), snapshot.TotalSearches)
	assert.InDelta(t, 20.0, snapshot.AverageResponseTime, 1e-9)
}

func TestRecorderRunningAverage(t *testing.T) {
	recorder := newTestRecorder(t)

	durations := []time.Duration{
		5 * time.Millisecond,
		15 * time.Millisecond,
		40 * time.Millisecond,
		100 * time.Millisecond,
	}
	var sum float64
	for _, d := range durations {
		recorder.RecordSearch("q", d, 1, false)
		sum += float64(d) / float64(time.Millisecond)
	}

	snapshot := recorder.Snapshot()
	assert.InDelta(t, sum/float64(len(durations)), snapshot.AverageResponseTime, 1e-9)
}

func TestRecorderPopularQueries(t *testing.T) {
	t.Run("sorted by count descending", func(t *testing.T) {
		recorder := newTestRecorder(t)

		recorder.RecordSearch("rare", time.Millisecond, 1, false)
		for range 3 {
			recorder.RecordSearch("common", time.Millisecond, 1, false)
		}

		snapshot := recorder.Snapshot()
		require.Len(t, snapshot.PopularQueries, 2)
		assert.Equal(t, "common", snapshot.PopularQueries[0].Query)
		assert.Equal(t, 3, snapshot.PopularQueries[0].Count)
		assert.Equal(t, "rare", snapshot.PopularQueries[1].Query)
	})

	t.Run("capped at twenty", func(t *testing.T) {
		recorder := newTestRecorder(t)

		for i := range 30 {
			recorder.RecordSearch(fmt.Sprintf("query-%02d", i), time.Millisecond, 1, false)
		}

		snapshot := recorder.Snapshot()
		assert.Len(t, snapshot.PopularQueries, MaxPopularQueries)
	})
}

func TestRecorderNoResults(t *testing.T) {
	recorder := newTestRecorder(t)

	recorder.RecordSearch("hit", time.Millisecond, 2, false)
	recorder.RecordSearch("miss", time.Millisecond, 0, false)
	recorder.RecordSearch("miss", time.Millisecond, 0, false)
	recorder.RecordSearch("crashed", time.Millisecond, 0, true)

	snapshot := recorder.Snapshot()
	assert.Equal(t, []string{"miss"}, snapshot.NoResultsQueries, "failed calls stay out of the no-results set")

	// failed calls still count toward volume and popularity
	assert.Equal(t, uint64(4), snapshot.TotalSearches)
	queries := make([]string, 0, len(snapshot.PopularQueries))
	for _, qc := range snapshot.PopularQueries {
		queries = append(queries, qc.Query)
	}
	assert.Contains(t, queries, "crashed")
}

func TestRecorderTruncatesLongQueries(t *testing.T) {
	recorder := newTestRecorder(t)

	long := strings.Repeat("z", 1000)
	recorder.RecordSearch(long, time.Millisecond, 0, false)

	snapshot := recorder.Snapshot()
	require.Len(t, snapshot.NoResultsQueries, 1)
	assert.Len(t, snapshot.NoResultsQueries[0], 256)
}

func TestRecorderClear(t *testing.T) {
	recorder := newTestRecorder(t)

	recorder.RecordSearch("something", 10*time.Millisecond, 0, false)
	recorder.Clear(t.Context())

	snapshot := recorder.Snapshot()
	assert.Zero(t, snapshot.TotalSearches)
	assert.Zero(t, snapshot.AverageResponseTime)
	assert.Empty(t, snapshot.PopularQueries)
	assert.Empty(t, snapshot.NoResultsQueries)
}

func TestRecorderPersistence(t *testing.T) {
	kv, err := badgerstore.NewMemoryKV()
	require.NoError(t, err)
	defer kv.Close()

	recorder, err := NewRecorder(kv)
	require.NoError(t, err)
	recorder.RecordSearch("durable", 8*time.Millisecond, 0, false)
	recorder.RecordSearch("durable", 12*time.Millisecond, 1, false)
	recorder.Release()

	restored, err := NewRecorder(kv)
	require.NoError(t, err)
	t.Cleanup(restored.Release)
	require.NoError(t, restored.LoadFrom(t.Context()))

	snapshot := restored.Snapshot()
	assert.Equal(t, uint64(2), snapshot.TotalSearches)
	assert.InDelta(t, 10.0, snapshot.AverageResponseTime, 1e-9)
	require.Len(t, snapshot.PopularQueries, 1)
	assert.Equal(t, 2, snapshot.PopularQueries[0].Count)
	assert.Equal(t, []string{"durable"}, snapshot.NoResultsQueries)
}
