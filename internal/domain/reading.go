package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfRange marks a reading field outside its documented range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrHistoryWindow marks a supplied history of the wrong length.
	ErrHistoryWindow = errors.New("history window mismatch")
)

// ParseRawEvent deserializes a RawEvent's value into a Reading. A missing
// observation time defaults to the message timestamp, and a missing month is
// taken from the observation time. The pollutants object is required.
func ParseRawEvent(raw RawEvent) (Reading, error) {
	var r Reading
	if err := json.Unmarshal(raw.Value, &r); err != nil {
		return Reading{}, fmt.Errorf("parse reading: %w", err)
	}

	var fields struct {
		Pollutants json.RawMessage `json:"pollutants"`
	}
	if err := json.Unmarshal(raw.Value, &fields); err != nil {
		return Reading{}, fmt.Errorf("parse reading: %w", err)
	}
	if len(fields.Pollutants) == 0 || string(fields.Pollutants) == "null" {
		return Reading{}, fmt.Errorf("parse reading: %w: no pollutants object", ErrMissingPollutant)
	}

	r.Zone = strings.TrimSpace(r.Zone)
	if r.Zone == "" {
		return Reading{}, errors.New("parse reading: zone name is required")
	}
	if r.ObservedAt.IsZero() {
		r.ObservedAt = raw.Timestamp.UTC()
	}
	if r.Month == 0 && !r.ObservedAt.IsZero() {
		r.Month = int(r.ObservedAt.Month())
	}
	if len(r.History) > 0 && len(r.History) != HistoryDays {
		return Reading{}, fmt.Errorf("parse reading: %w: got %d days, want %d", ErrHistoryWindow, len(r.History), HistoryDays)
	}
	return r, nil
}

// Validate reports every field of r outside its range, joined into one
// error. Supplied history days are held to the pollutant ranges. Each
// violation wraps ErrOutOfRange.
func (ir InputRanges) Validate(r Reading) error {
	var errs []error
	check := func(field string, rng Range, v float64) {
		if !rng.Contains(v) {
			errs = append(errs, fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrOutOfRange, field, v, rng.Min, rng.Max))
		}
	}

	for _, p := range Pollutants() {
		check(p.String(), ir.Pollutants[p], r.Pollutants[p])
	}
	check("temperature_c", ir.Temperature, r.Weather.TemperatureC)
	check("humidity_pct", ir.Humidity, r.Weather.HumidityPct)
	check("wind_kmh", ir.Wind, r.Weather.WindKmh)
	check("month", ir.Month, float64(r.Month))

	for d, day := range r.History {
		for _, p := range Pollutants() {
			check(fmt.Sprintf("history[%d].%s", d, p), ir.Pollutants[p], day[p])
		}
	}

	return errors.Join(errs...)
}

// Clamp limits every field of r to its range and describes each adjustment.
// The month is clamped to the nearest valid month. Supplied history is
// clamped on a copy, leaving the caller's slice untouched.
func (ir InputRanges) Clamp(r Reading) (Reading, []string) {
	var adjusted []string
	clamp := func(field string, rng Range, v float64) float64 {
		c := rng.Clamp(v)
		if c != v {
			adjusted = append(adjusted, fmt.Sprintf("%s %g -> %g", field, v, c))
		}
		return c
	}

	for _, p := range Pollutants() {
		r.Pollutants[p] = clamp(p.String(), ir.Pollutants[p], r.Pollutants[p])
	}
	r.Weather.TemperatureC = clamp("temperature_c", ir.Temperature, r.Weather.TemperatureC)
	r.Weather.HumidityPct = clamp("humidity_pct", ir.Humidity, r.Weather.HumidityPct)
	r.Weather.WindKmh = clamp("wind_kmh", ir.Wind, r.Weather.WindKmh)
	r.Month = int(clamp("month", ir.Month, float64(r.Month)))

	if len(r.History) > 0 {
		history := make(History, len(r.History))
		for d, day := range r.History {
			for _, p := range Pollutants() {
				history[d][p] = clamp(fmt.Sprintf("history[%d].%s", d, p), ir.Pollutants[p], day[p])
			}
		}
		r.History = history
	}

	return r, adjusted
}
