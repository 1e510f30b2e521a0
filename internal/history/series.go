// Package history maintains the append-only series of daily snapshots and
// the statistics computed over it: Pearson correlation, population standard
// deviation, and trailing-window trends.
package history

import (
	"sort"
	"sync"

	"github.com/talgya/vitals/internal/metrics"
)

// Store is the in-memory, date-keyed snapshot series. Writes for an existing
// date replace the previous value (last write wins per recompute cycle);
// nothing is ever deleted here — retention is an external concern.
type Store struct {
	mu     sync.RWMutex
	byDate map[string]metrics.DailySnapshot
	dates  []string // sorted ascending
}

// NewStore creates an empty snapshot store.
func NewStore() *Store {
	return &Store{byDate: make(map[string]metrics.DailySnapshot)}
}

// Put inserts or replaces the snapshot for its date.
func (s *Store) Put(snap metrics.DailySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byDate[snap.Date]; !exists {
		i := sort.SearchStrings(s.dates, snap.Date)
		s.dates = append(s.dates, "")
		copy(s.dates[i+1:], s.dates[i:])
		s.dates[i] = snap.Date
	}
	s.byDate[snap.Date] = snap
}

// Get returns the snapshot for a date.
func (s *Store) Get(date string) (metrics.DailySnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.byDate[date]
	return snap, ok
}

// Len returns the number of stored days.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dates)
}

// All returns every snapshot in date order.
func (s *Store) All() []metrics.DailySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]metrics.DailySnapshot, 0, len(s.dates))
	for _, d := range s.dates {
		out = append(out, s.byDate[d])
	}
	return out
}

// LastN returns the trailing n snapshots in date order (fewer when the store
// holds fewer).
func (s *Store) LastN(n int) []metrics.DailySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := len(s.dates) - n
	if start < 0 {
		start = 0
	}
	out := make([]metrics.DailySnapshot, 0, len(s.dates)-start)
	for _, d := range s.dates[start:] {
		out = append(out, s.byDate[d])
	}
	return out
}

// Series extracts the trailing days values of one metric, paired by date
// order. days <= 0 means the whole store.
func (s *Store) Series(m metrics.Metric, days int) []float64 {
	snaps := s.All()
	if days > 0 && len(snaps) > days {
		snaps = snaps[len(snaps)-days:]
	}
	out := make([]float64, len(snaps))
	for i, snap := range snaps {
		out[i] = snap.Value(m)
	}
	return out
}
