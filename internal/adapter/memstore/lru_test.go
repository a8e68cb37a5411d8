package memstore

import (
	"testing"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Store tests ---

func TestStore_AssessmentLookup(t *testing.T) {
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "zone_cache_total"}, []string{"result"})
	s := New(10, lookups)

	s.PutAssessment(domain.Assessment{Zone: "Quito-Centro", Alert: domain.AlertPreventive})

	a, ok := s.Assessment("Quito-Centro")
	require.True(t, ok)
	assert.Equal(t, domain.AlertPreventive, a.Alert)

	_, ok = s.Assessment("Loja")
	assert.False(t, ok)

	assert.Equal(t, 1.0, testutil.ToFloat64(lookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(lookups.WithLabelValues("miss")))
}

func TestStore_LatestAssessmentWins(t *testing.T) {
	s := New(10, nil)

	s.PutAssessment(domain.Assessment{Zone: "Cuenca", Month: 7})
	s.PutAssessment(domain.Assessment{Zone: "Cuenca", Month: 8})

	a, ok := s.Assessment("Cuenca")
	require.True(t, ok)
	assert.Equal(t, 8, a.Month)
	assert.Equal(t, 1, s.Len())
}

func TestStore_AssessmentsSortedByZone(t *testing.T) {
	s := New(10, nil)
	for _, z := range []string{"Manta", "Ambato", "Loja"} {
		s.PutAssessment(domain.Assessment{Zone: z})
	}

	got := s.Assessments()
	require.Len(t, got, 3)
	assert.Equal(t, "Ambato", got[0].Zone)
	assert.Equal(t, "Loja", got[1].Zone)
	assert.Equal(t, "Manta", got[2].Zone)
}

func TestStore_Reports(t *testing.T) {
	s := New(10, nil)

	_, ok := s.LatestReport()
	assert.False(t, ok)

	s.PutReport(domain.Report{Month: 8, Totals: domain.TierCounts{Emergency: 1}})
	s.PutReport(domain.Report{Month: 9, Totals: domain.TierCounts{Normal: 2}})

	latest, ok := s.LatestReport()
	require.True(t, ok)
	assert.Equal(t, 9, latest.Month)

	aug, ok := s.Report(8)
	require.True(t, ok)
	assert.Equal(t, 1, aug.Totals.Emergency)

	_, ok = s.Report(1)
	assert.False(t, ok)
}

func TestStore_LatestReportFollowsNewestObservation(t *testing.T) {
	s := New(10, nil)

	s.PutAssessment(domain.Assessment{Zone: "Quito-Centro", Month: 12, ObservedAt: time.Date(2025, time.December, 30, 8, 0, 0, 0, time.UTC)})
	s.PutAssessment(domain.Assessment{Zone: "Loja", Month: 1, ObservedAt: time.Date(2026, time.January, 2, 8, 0, 0, 0, time.UTC)})

	// Reports are rebuilt in month order, so December is stored last.
	s.PutReport(domain.Report{Month: 1})
	s.PutReport(domain.Report{Month: 12})

	latest, ok := s.LatestReport()
	require.True(t, ok)
	assert.Equal(t, 1, latest.Month)

	// A late reading for an older month does not move the latest report.
	s.PutAssessment(domain.Assessment{Zone: "Cuenca", Month: 11, ObservedAt: time.Date(2025, time.November, 20, 8, 0, 0, 0, time.UTC)})
	s.PutReport(domain.Report{Month: 11})

	latest, ok = s.LatestReport()
	require.True(t, ok)
	assert.Equal(t, 1, latest.Month)
}

func TestStore_OnEvictDropsZoneSeries(t *testing.T) {
	tiers := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "zone_alert_tier"}, []string{"zone"})
	s := New(2, nil)
	var evicted []string
	s.OnEvict(func(zone string) {
		evicted = append(evicted, zone)
		tiers.DeleteLabelValues(zone)
	})

	for _, z := range []string{"Ambato", "Cuenca", "Loja", "Manta"} {
		tiers.WithLabelValues(z).Set(1)
		s.PutAssessment(domain.Assessment{Zone: z})
	}

	assert.Equal(t, []string{"Ambato", "Cuenca"}, evicted)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, testutil.CollectAndCount(tiers))

	// Updating a cached zone evicts nothing.
	s.PutAssessment(domain.Assessment{Zone: "Loja", Month: 9})
	assert.Len(t, evicted, 2)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", domain.Assessment{Zone: "A"})
	c.put("b", domain.Assessment{Zone: "B"})

	result, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", result.Zone)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.Assessment{Zone: "A"})
	c.put("b", domain.Assessment{Zone: "B"})
	evicted, ok := c.put("c", domain.Assessment{Zone: "C"})
	require.True(t, ok)
	assert.Equal(t, "a", evicted)

	_, ok = c.get("a")
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", result.Zone)

	result, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", result.Zone)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)

	c.put("a", domain.Assessment{Zone: "A"})
	c.put("b", domain.Assessment{Zone: "B"})

	// Access "a" to promote it
	c.get("a")

	// Insert "c": should evict "b" (LRU), not "a"
	c.put("c", domain.Assessment{Zone: "C"})

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_ValuesInRecencyOrder(t *testing.T) {
	c := newLRUCache(3)

	c.put("a", domain.Assessment{Zone: "A"})
	c.put("b", domain.Assessment{Zone: "B"})
	c.put("c", domain.Assessment{Zone: "C"})
	c.get("a")

	got := c.values()
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].Zone)
	assert.Equal(t, "C", got[1].Zone)
	assert.Equal(t, "B", got[2].Zone)
}
