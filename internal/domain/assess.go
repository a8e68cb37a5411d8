package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// History sources recorded on an Assessment.
const (
	HistorySupplied    = "supplied"
	HistorySynthesized = "synthesized"
)

// Assessor runs the monitoring cycle for one zone at a time. It holds only
// read-only tables, so one Assessor serves every zone of a cycle.
type Assessor struct {
	limits     Limits
	forecaster *Forecaster
	classifier *Classifier
	history    *HistoryGenerator
}

// NewAssessor creates an Assessor. The history generator is used for zones
// that arrive without a history; pass nil to require supplied histories.
func NewAssessor(limits Limits, seasons SeasonalFactors, history *HistoryGenerator) *Assessor {
	return &Assessor{
		limits:     limits,
		forecaster: NewForecaster(seasons),
		classifier: NewClassifier(limits),
		history:    history,
	}
}

// Limits returns the limits the Assessor classifies against.
func (a *Assessor) Limits() Limits { return a.limits }

// Seed returns zone with a synthesized history when it has none, and the
// source of the history it ends up with.
func (a *Assessor) Seed(zone Zone) (Zone, string, error) {
	if len(zone.History) > 0 {
		return zone, HistorySupplied, nil
	}
	if a.history == nil {
		return zone, "", fmt.Errorf("zone %q: no history supplied and synthesis disabled", zone.Name)
	}
	return zone.WithHistory(a.history.Generate(zone.Pollutants)), HistorySynthesized, nil
}

// Smooth replaces the zone's levels with the historical average.
func (a *Assessor) Smooth(zone Zone) Zone {
	return zone.WithPollutants(Average(zone.History, zone.Pollutants))
}

// Predict replaces the zone's levels with the forecast for month.
func (a *Assessor) Predict(zone Zone, month int) Zone {
	return zone.WithPollutants(a.forecaster.Forecast(zone, month))
}

// Classify sets the zone's alert level from its current levels.
func (a *Assessor) Classify(zone Zone) (Zone, Classification) {
	c := a.classifier.Classify(zone.Pollutants)
	zone.AlertLevel = c.Tier
	return zone, c
}

// Assess runs seed, smooth, predict and classify for a reading.
func (a *Assessor) Assess(r Reading) (Assessment, error) {
	seeded, source, err := a.Seed(r.ToZone())
	if err != nil {
		return Assessment{}, err
	}

	smoothed := a.Smooth(seeded)
	predicted := a.Predict(smoothed, r.Month)
	final, c := a.Classify(predicted)

	elevated := make([]string, 0, len(c.Elevated))
	for _, p := range c.Elevated {
		elevated = append(elevated, p.String())
	}

	return Assessment{
		ID:            generateID(r.Zone, r.Month, r.ObservedAt),
		Zone:          r.Zone,
		Month:         r.Month,
		Weather:       r.Weather,
		Current:       r.Pollutants,
		Baseline:      smoothed.Pollutants,
		Forecast:      final.Pollutants,
		Alert:         final.AlertLevel,
		Elevated:      elevated,
		HistorySource: source,
		ObservedAt:    r.ObservedAt,
		ProcessedAt:   clock.Now(),
		Final:         final,
	}, nil
}

// generateID produces a deterministic ID from the zone, month and observation
// time, so replaying a reading yields the same assessment ID.
func generateID(zone string, month int, observedAt time.Time) string {
	input := fmt.Sprintf("%s|%d|%s", zone, month, observedAt.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	return "zone-" + hex.EncodeToString(hash[:8])
}
