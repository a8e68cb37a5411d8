package domain

// Weather correction thresholds and multipliers.
const (
	WindDispersionKmh  = 15.0
	WindDispersionMult = 0.8
	HumidityRetainPct  = 80.0
	HumidityRetainMult = 1.1
)

// Forecaster predicts next-day levels from recent history.
type Forecaster struct {
	seasons SeasonalFactors
}

// NewForecaster creates a Forecaster using the given seasonal table.
func NewForecaster(seasons SeasonalFactors) *Forecaster {
	return &Forecaster{seasons: seasons}
}

// Forecast returns the predicted level of every pollutant for zone in month.
// Each pollutant takes the recency-weighted mean of the last RecentDays
// snapshots, scaled by the seasonal factor, then by the weather adjustment.
// Pollutants are computed independently. With an empty history the current
// level stands in for the weighted mean and is not seasonally scaled.
func (f *Forecaster) Forecast(zone Zone, month int) Levels {
	seasonal := f.seasons.Factor(month)
	out := zone.Pollutants
	for _, p := range Pollutants() {
		if mean, ok := WeightedRecentMean(zone.History, p); ok {
			out[p] = mean * seasonal
		}
		out[p] = WeatherAdjustment(zone.Weather, out[p])
	}
	return out
}

// WeightedRecentMean returns the weighted mean of p over the most recent
// RecentDays snapshots. The most recent day has weight RecentDays, the one
// before RecentDays-1, down to 1. Returns false when history is empty.
func WeightedRecentMean(history History, p Pollutant) (float64, bool) {
	var sum, weights float64
	for d, snap := range history.Recent(RecentDays) {
		w := float64(RecentDays - d)
		sum += snap[p] * w
		weights += w
	}
	if weights == 0 {
		return 0, false
	}
	return sum / weights, true
}

// WeatherAdjustment applies the wind and humidity corrections to level.
// Strong wind disperses pollutants; high humidity retains them.
func WeatherAdjustment(w Weather, level float64) float64 {
	if w.WindKmh > WindDispersionKmh {
		level *= WindDispersionMult
	}
	if w.HumidityPct > HumidityRetainPct {
		level *= HumidityRetainMult
	}
	return level
}
