package index

import (
	"sync"
	"time"

	"github.com/poiesic/searchlight/core"
)

// Store is the in-memory index: a mapping from record id to its IndexRecord.
// It is the authoritative state for the lifetime of the process; persistence
// is a best-effort write-through handled by the Indexer.
//
// Records held by the store are treated as immutable. Re-indexing an id swaps
// the pointer under the write lock, so a concurrent reader observes either
// the old record or the new one, never a partially updated mix.
type Store struct {
	mu      sync.RWMutex
	records map[string]*core.IndexRecord
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*core.IndexRecord),
	}
}

// Put inserts or replaces the record for its id.
func (s *Store) Put(record *core.IndexRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.ID] = record
}

// Get returns the record for id, if present.
func (s *Store) Get(id string) (*core.IndexRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	return record, ok
}

// Delete removes the record for id and reports whether it was present.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.records[id]
	if ok {
		delete(s.records, id)
	}
	return ok
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Snapshot returns the current records as a new slice. The records themselves
// are shared, immutable pointers; the slice may be iterated without holding
// any lock.
func (s *Store) Snapshot() []*core.IndexRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]*core.IndexRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, record)
	}
	return records
}

// SnapshotValues returns a value copy of the current records, suitable for
// serialization.
func (s *Store) SnapshotValues() []core.IndexRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]core.IndexRecord, 0, len(s.records))
	for _, record := range s.records {
		records = append(records, *record)
	}
	return records
}

// Replace discards the current contents and installs the given records.
func (s *Store) Replace(records []core.IndexRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*core.IndexRecord, len(records))
	for i := range records {
		record := records[i]
		s.records[record.ID] = &record
	}
}

// Clear removes all records.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*core.IndexRecord)
}

// Stats summarizes the store contents.
func (s *Store) Stats() core.IndexStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := core.IndexStats{
		TotalItems:   len(s.records),
		CountsByType: make(map[core.ContentType]int),
	}
	var last time.Time
	for _, record := range s.records {
		stats.CountsByType[record.Type]++
		if record.LastIndexed.After(last) {
			last = record.LastIndexed
		}
	}
	stats.LastIndexed = last
	return stats
}
