package domain

import "strings"

// Weather thresholds for advisory notes.
const (
	stagnantWindKmh = 5.0
	humidNotePct    = 80.0
)

// cityAdvice holds extra PM2.5 advice for zones in known cities, matched by
// zone name.
var cityAdvice = []struct {
	city   string
	advice []string
}{
	{"quito", []string{
		"Avoid exercising in Parque La Carolina and El Ejido",
		"Account for the altitude (2800 m): respiratory impact is higher",
	}},
	{"guayaquil", []string{
		"Avoid the Malecón 2000 during peak traffic hours",
		"Take extra care with heat and humidity",
	}},
}

// Recommend returns public health advice for a classified zone.
func Recommend(zone Zone, limits Limits) []string {
	var out []string
	above := func(p Pollutant) bool {
		return limits.Percent(p, zone.Pollutants[p]) > ElevatedPercent
	}

	if zone.AlertLevel >= AlertPreventive {
		if above(PM25) {
			out = append(out,
				"Avoid intense outdoor physical activity",
				"Wear a protective mask (N95 or KN95)",
				"Keep windows closed during the day",
			)
			name := strings.ToLower(zone.Name)
			for _, c := range cityAdvice {
				if strings.Contains(name, c.city) {
					out = append(out, c.advice...)
				}
			}
		}
		if above(NO2) {
			out = append(out,
				"Prefer public transport or cycling",
				"Avoid high-traffic areas",
				"Plan routes along less congested streets",
			)
		}
		if above(SO2) {
			out = append(out,
				"Stay away from industrial areas",
				"People with asthma should carry an inhaler",
			)
		}
		if zone.AlertLevel == AlertEmergency {
			out = append(out,
				"Stay indoors as much as possible",
				"Vehicle restrictions recommended",
				"Vulnerable groups (children, elderly, pregnant women) take extreme care",
				"Consider closing schools and suspending outdoor activities",
			)
		}
	} else {
		out = append(out,
			"Levels within acceptable ranges",
			"Keep up environmentally friendly practices",
			"Use public transport when possible",
			"Good conditions for outdoor activities",
		)
	}

	if zone.Weather.WindKmh < stagnantWindKmh {
		out = append(out, "Low wind: pollutants accumulate more")
	}
	if zone.Weather.HumidityPct > humidNotePct {
		out = append(out, "High humidity: pollutants are retained longer")
	}
	return out
}
