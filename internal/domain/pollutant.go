package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingPollutant is returned when a levels object omits a tracked pollutant.
var ErrMissingPollutant = errors.New("missing pollutant")

// Pollutant identifies a tracked pollutant kind.
type Pollutant int

// Canonical evaluation order.
const (
	PM25 Pollutant = iota
	PM10
	NO2
	SO2

	// NumPollutants is the number of tracked pollutant kinds.
	NumPollutants = 4
)

var pollutantNames = [NumPollutants]string{"PM2.5", "PM10", "NO2", "SO2"}

// Pollutants lists every pollutant kind in canonical order.
func Pollutants() []Pollutant {
	return []Pollutant{PM25, PM10, NO2, SO2}
}

func (p Pollutant) String() string {
	if p < 0 || int(p) >= NumPollutants {
		return fmt.Sprintf("Pollutant(%d)", int(p))
	}
	return pollutantNames[p]
}

// Unit returns the concentration unit. All tracked pollutants use μg/m³.
func (p Pollutant) Unit() string { return "μg/m³" }

// ParsePollutant resolves a display name such as "PM2.5" to its Pollutant.
func ParsePollutant(name string) (Pollutant, error) {
	for i, n := range pollutantNames {
		if n == name {
			return Pollutant(i), nil
		}
	}
	return 0, fmt.Errorf("unknown pollutant %q", name)
}

// Levels holds one concentration per pollutant, indexed by Pollutant.
type Levels [NumPollutants]float64

// Get returns the concentration for p.
func (l Levels) Get(p Pollutant) float64 { return l[p] }

// With returns a copy of l with p set to v.
func (l Levels) With(p Pollutant, v float64) Levels {
	l[p] = v
	return l
}

// Scale returns a copy of l with every concentration multiplied by f.
func (l Levels) Scale(f float64) Levels {
	for i := range l {
		l[i] *= f
	}
	return l
}

// MarshalJSON encodes levels as an object keyed by pollutant display name.
func (l Levels) MarshalJSON() ([]byte, error) {
	m := make(map[string]float64, NumPollutants)
	for _, p := range Pollutants() {
		m[p.String()] = l[p]
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes an object keyed by pollutant display name. Every
// tracked pollutant must be present and no other keys are accepted.
func (l *Levels) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	var out Levels
	seen := 0
	for name, v := range m {
		p, err := ParsePollutant(name)
		if err != nil {
			return err
		}
		out[p] = v
		seen++
	}
	if seen != NumPollutants {
		for _, p := range Pollutants() {
			if _, ok := m[p.String()]; !ok {
				return fmt.Errorf("%w: %s", ErrMissingPollutant, p)
			}
		}
	}
	*l = out
	return nil
}
