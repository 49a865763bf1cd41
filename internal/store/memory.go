package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/i474232898/activity-recommender/internal/report"
)

var (
	// ErrNotFound is returned when no report is available for a given city.
	ErrNotFound = errors.New("no report for city")
)

// MemoryStore is a concurrency-safe in-memory holder of the latest report per city.
// Older reports are overwritten, not kept.
type MemoryStore struct {
	mu sync.RWMutex

	// key: city, value: latest report
	data map[string]report.Report
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]report.Report),
	}
}

// Save replaces the stored report for r.City.
func (s *MemoryStore) Save(r report.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[r.City] = r
}

// Latest returns the most recent report for a city.
func (s *MemoryStore) Latest(city string) (report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data[city]
	if !ok {
		return report.Report{}, ErrNotFound
	}
	return r, nil
}

// Cities lists the cities that have a report, sorted by name.
func (s *MemoryStore) Cities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cities := make([]string, 0, len(s.data))
	for c := range s.data {
		cities = append(cities, c)
	}
	sort.Strings(cities)
	return cities
}
