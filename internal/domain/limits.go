package domain

// RegulatoryBasis names the standard the default limits come from.
const RegulatoryBasis = "Texto Unificado de Legislación Secundaria del Ministerio del Ambiente (TULSMA)"

// Limits holds the regulatory ceiling concentration for each pollutant.
// The zero value is not usable; construct with NewLimits or DefaultLimits.
type Limits struct {
	ceiling Levels
}

// NewLimits creates a limits table. Every limit must be positive for
// percentages to be meaningful.
func NewLimits(ceiling Levels) Limits {
	return Limits{ceiling: ceiling}
}

// DefaultLimits returns the TULSMA limits in μg/m³.
func DefaultLimits() Limits {
	return NewLimits(Levels{
		PM25: 37.0,
		PM10: 75.0,
		NO2:  150.0,
		SO2:  125.0,
	})
}

// Of returns the limit for p.
func (l Limits) Of(p Pollutant) float64 { return l.ceiling[p] }

// Fraction returns level as a fraction of the limit for p (1.0 = at limit).
func (l Limits) Fraction(p Pollutant, level float64) float64 {
	return level / l.ceiling[p]
}

// Percent returns level as a percentage of the limit for p.
func (l Limits) Percent(p Pollutant, level float64) float64 {
	return 100 * level / l.ceiling[p]
}

// SeasonalFactors maps a calendar month to a burning-season multiplier.
type SeasonalFactors struct {
	byMonth [12]float64
}

// NewSeasonalFactors builds a table from twelve multipliers, January first.
func NewSeasonalFactors(byMonth [12]float64) SeasonalFactors {
	return SeasonalFactors{byMonth: byMonth}
}

// DefaultSeasonalFactors returns the agricultural burning seasonality for
// Ecuador: dry season Aug-Sep, transition Jul and Oct, wet season Mar-May.
func DefaultSeasonalFactors() SeasonalFactors {
	return NewSeasonalFactors([12]float64{
		1.0, // Jan
		1.0, // Feb
		0.8, // Mar
		0.8, // Apr
		0.8, // May
		1.0, // Jun
		1.2, // Jul
		1.5, // Aug
		1.5, // Sep
		1.2, // Oct
		1.0, // Nov
		1.0, // Dec
	})
}

// Factor returns the multiplier for month (1-12). Months outside that range
// get the neutral factor 1.0.
func (s SeasonalFactors) Factor(month int) float64 {
	if month < 1 || month > 12 {
		return 1.0
	}
	return s.byMonth[month-1]
}

// Range is an inclusive numeric interval.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Clamp returns v limited to the range.
func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// InputRanges documents the accepted instrument range of every reading field.
type InputRanges struct {
	Pollutants  [NumPollutants]Range
	Temperature Range
	Humidity    Range
	Wind        Range
	Month       Range
}

// DefaultInputRanges returns the ranges the collector's instruments report in.
func DefaultInputRanges() InputRanges {
	return InputRanges{
		Pollutants: [NumPollutants]Range{
			PM25: {0, 500},
			PM10: {0, 600},
			NO2:  {0, 400},
			SO2:  {0, 300},
		},
		Temperature: Range{-10, 40},
		Humidity:    Range{0, 100},
		Wind:        Range{0, 80},
		Month:       Range{1, 12},
	}
}
