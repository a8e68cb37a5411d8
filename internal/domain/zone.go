package domain

import (
	"fmt"
	"strings"
)

// HistoryDays is the length of a zone's daily history window.
const HistoryDays = 30

// Weather holds the current meteorological conditions for a zone.
type Weather struct {
	TemperatureC float64 `json:"temperature_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	WindKmh      float64 `json:"wind_kmh"`
}

// History is an ordered series of daily snapshots, oldest first.
type History []Levels

// Recent returns up to n of the most recent snapshots, most recent first.
func (h History) Recent(n int) []Levels {
	if n > len(h) {
		n = len(h)
	}
	out := make([]Levels, 0, n)
	for d := 0; d < n; d++ {
		out = append(out, h[len(h)-1-d])
	}
	return out
}

// Zone is a monitored geographic unit with its own readings and history.
// Pipeline stages never mutate a Zone in place; each returns an updated copy.
type Zone struct {
	Name       string
	Pollutants Levels
	Weather    Weather
	History    History
	AlertLevel AlertTier
}

// WithPollutants returns a copy of z carrying the given levels.
func (z Zone) WithPollutants(l Levels) Zone {
	z.Pollutants = l
	return z
}

// WithHistory returns a copy of z carrying the given history.
func (z Zone) WithHistory(h History) Zone {
	z.History = h
	return z
}

// AlertTier is the three-level alert classification of a zone.
type AlertTier int

const (
	AlertNormal AlertTier = iota
	AlertPreventive
	AlertEmergency
)

// AlertTiers lists every tier from lowest to highest.
func AlertTiers() []AlertTier {
	return []AlertTier{AlertNormal, AlertPreventive, AlertEmergency}
}

func (t AlertTier) String() string {
	switch t {
	case AlertNormal:
		return "normal"
	case AlertPreventive:
		return "preventive"
	case AlertEmergency:
		return "emergency"
	default:
		return fmt.Sprintf("AlertTier(%d)", int(t))
	}
}

// Label is the upper-case form used in text reports.
func (t AlertTier) Label() string {
	return strings.ToUpper(t.String())
}

// MarshalText encodes the tier by name.
func (t AlertTier) MarshalText() ([]byte, error) {
	if t < AlertNormal || t > AlertEmergency {
		return nil, fmt.Errorf("invalid alert tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name.
func (t *AlertTier) UnmarshalText(text []byte) error {
	for _, tier := range AlertTiers() {
		if strings.EqualFold(string(text), tier.String()) {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown alert tier %q", string(text))
}
