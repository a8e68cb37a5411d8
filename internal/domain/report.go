package domain

import "time"

// ReportTitle heads every air quality report.
const ReportTitle = "AIR QUALITY REPORT - ECUADOR"

// Band is a qualitative description of a level relative to its limit.
type Band string

const (
	BandGood      Band = "Good"
	BandRegular   Band = "Regular"
	BandPoor      Band = "Poor"
	BandHazardous Band = "Hazardous"
)

// BandFor maps a percentage of the limit to its qualitative band:
// ≤50 Good, ≤75 Regular, ≤100 Poor, otherwise Hazardous.
func BandFor(percent float64) Band {
	switch {
	case percent <= 50:
		return BandGood
	case percent <= 75:
		return BandRegular
	case percent <= 100:
		return BandPoor
	default:
		return BandHazardous
	}
}

// PollutantSummary describes one pollutant's forecast level in a report.
type PollutantSummary struct {
	Pollutant string  `json:"pollutant"`
	Unit      string  `json:"unit"`
	Level     float64 `json:"level"`
	Limit     float64 `json:"limit"`
	Percent   float64 `json:"percent"`
	Band      Band    `json:"band"`
}

// ZoneSummary is the per-zone section of a report.
type ZoneSummary struct {
	Name            string             `json:"name"`
	Pollutants      []PollutantSummary `json:"pollutants"`
	Weather         Weather            `json:"weather"`
	Alert           AlertTier          `json:"alert"`
	Recommendations []string           `json:"recommendations"`
}

// TierCounts counts zones per alert tier.
type TierCounts struct {
	Normal     int `json:"normal"`
	Preventive int `json:"preventive"`
	Emergency  int `json:"emergency"`
}

// Add counts one zone at tier.
func (c *TierCounts) Add(tier AlertTier) {
	switch tier {
	case AlertNormal:
		c.Normal++
	case AlertPreventive:
		c.Preventive++
	case AlertEmergency:
		c.Emergency++
	}
}

// Report is the structured output of a monitoring cycle. It is the only
// thing export and presentation layers consume.
type Report struct {
	Title           string        `json:"title"`
	Month           int           `json:"month"`
	GeneratedAt     time.Time     `json:"generated_at"`
	RegulatoryBasis string        `json:"regulatory_basis"`
	Zones           []ZoneSummary `json:"zones"`
	Totals          TierCounts    `json:"totals"`
}

// BuildReport summarizes classified assessments, in the order given.
func BuildReport(assessments []Assessment, month int, limits Limits, generatedAt time.Time) Report {
	report := Report{
		Title:           ReportTitle,
		Month:           month,
		GeneratedAt:     generatedAt,
		RegulatoryBasis: RegulatoryBasis,
		Zones:           make([]ZoneSummary, 0, len(assessments)),
	}

	for _, a := range assessments {
		report.Zones = append(report.Zones, summarizeZone(a, limits))
		report.Totals.Add(a.Alert)
	}
	return report
}

func summarizeZone(a Assessment, limits Limits) ZoneSummary {
	pollutants := make([]PollutantSummary, 0, NumPollutants)
	for _, p := range Pollutants() {
		level := a.Forecast[p]
		percent := limits.Percent(p, level)
		pollutants = append(pollutants, PollutantSummary{
			Pollutant: p.String(),
			Unit:      p.Unit(),
			Level:     level,
			Limit:     limits.Of(p),
			Percent:   percent,
			Band:      BandFor(percent),
		})
	}

	zone := a.Final
	if zone.Name == "" {
		zone = Zone{Name: a.Zone, Pollutants: a.Forecast, Weather: a.Weather, AlertLevel: a.Alert}
	}

	return ZoneSummary{
		Name:            a.Zone,
		Pollutants:      pollutants,
		Weather:         a.Weather,
		Alert:           a.Alert,
		Recommendations: Recommend(zone, limits),
	}
}
