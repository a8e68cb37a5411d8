// Package memstore keeps the latest assessment per zone and the latest report
// per month in memory, for the HTTP query endpoints.
package memstore

import (
	"sort"
	"sync"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Store holds the most recent state of every zone. Zones are bounded by an
// LRU; reports are kept one per month.
type Store struct {
	zones   *lruCache
	lookups *prometheus.CounterVec
	onEvict func(zone string)

	mu      sync.RWMutex
	reports map[int]domain.Report
	lastPut int

	// Month of the assessment with the newest observation time.
	newestObserved time.Time
	newestMonth    int
}

// New creates a Store holding at most maxZones zones. lookups, if non-nil,
// counts zone lookups by result (hit or miss).
func New(maxZones int, lookups *prometheus.CounterVec) *Store {
	return &Store{
		zones:   newLRUCache(maxZones),
		lookups: lookups,
		reports: make(map[int]domain.Report),
	}
}

// OnEvict registers fn to be called with the name of every zone the LRU
// evicts. It must be called before the store is shared.
func (s *Store) OnEvict(fn func(zone string)) {
	s.onEvict = fn
}

// PutAssessment records a as the latest assessment of its zone.
func (s *Store) PutAssessment(a domain.Assessment) {
	evicted, ok := s.zones.put(a.Zone, a)
	if ok && s.onEvict != nil {
		s.onEvict(evicted)
	}

	s.mu.Lock()
	if s.newestMonth == 0 || !a.ObservedAt.Before(s.newestObserved) {
		s.newestObserved = a.ObservedAt
		s.newestMonth = a.Month
	}
	s.mu.Unlock()
}

// Assessment returns the latest assessment for zone.
func (s *Store) Assessment(zone string) (domain.Assessment, bool) {
	a, ok := s.zones.get(zone)
	if s.lookups != nil {
		result := "miss"
		if ok {
			result = "hit"
		}
		s.lookups.WithLabelValues(result).Inc()
	}
	return a, ok
}

// Assessments returns the latest assessment of every cached zone, sorted by
// zone name.
func (s *Store) Assessments() []domain.Assessment {
	out := s.zones.values()
	sort.Slice(out, func(i, j int) bool { return out[i].Zone < out[j].Zone })
	return out
}

// Len returns the number of cached zones.
func (s *Store) Len() int { return s.zones.len() }

// PutReport stores r as the report for its month.
func (s *Store) PutReport(r domain.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.Month] = r
	s.lastPut = r.Month
}

// LatestReport returns the report for the month of the most recently observed
// assessment. Before that month has a report it falls back to the report
// stored last.
func (s *Store) LatestReport() (domain.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.reports[s.newestMonth]; ok {
		return r, true
	}
	r, ok := s.reports[s.lastPut]
	return r, ok
}

// Report returns the report stored for month.
func (s *Store) Report(month int) (domain.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[month]
	return r, ok
}
