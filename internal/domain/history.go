package domain

import (
	"math/rand/v2"
	"sync"
)

const (
	// RecentDays is the number of trailing history days correlated with the
	// current reading, and the window used by the forecast.
	RecentDays = 7

	// HistoryFloor replaces any synthesized concentration below zero.
	HistoryFloor = 0.1
)

// HistoryGenerator synthesizes a daily history around a current reading for
// zones the collector has no real history for.
//
// Days before the recent window vary by ±30% of the current level; the last
// RecentDays days vary by ±10%.
type HistoryGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewHistoryGenerator creates a generator drawing from rng.
func NewHistoryGenerator(rng *rand.Rand) *HistoryGenerator {
	return &HistoryGenerator{rng: rng}
}

// NewSeededHistoryGenerator creates a generator with a PCG source seeded
// from seed, so the same seed yields the same series.
func NewSeededHistoryGenerator(seed uint64) *HistoryGenerator {
	return NewHistoryGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Generate returns HistoryDays snapshots, oldest first.
func (g *HistoryGenerator) Generate(current Levels) History {
	g.mu.Lock()
	defer g.mu.Unlock()

	history := make(History, HistoryDays)
	for d := range HistoryDays {
		recent := d >= HistoryDays-RecentDays
		for _, p := range Pollutants() {
			v := current[p] * g.factor(recent)
			if v < 0 {
				v = HistoryFloor
			}
			history[d][p] = v
		}
	}
	return history
}

// factor draws a multiplier in [0.7, 1.3], or [0.9, 1.1] for recent days.
func (g *HistoryGenerator) factor(recent bool) float64 {
	if recent {
		return 0.9 + 0.2*g.rng.Float64()
	}
	return 0.7 + 0.6*g.rng.Float64()
}
