package domain

// Classification thresholds, as percentages of the regulatory limit.
const (
	ElevatedPercent = 75.0
	ExceededPercent = 100.0

	// PM25PreventiveFraction is the PM2.5 fraction of limit above which a
	// zone is at least Preventive. Any PM2.5 level it matches is already
	// above ElevatedPercent, so it never changes the outcome on its own.
	PM25PreventiveFraction = 0.8

	// MultiPollutantEscalation is the number of elevated pollutants that
	// escalates a zone to Emergency on its own.
	MultiPollutantEscalation = 2
)

// Classification is the outcome of classifying a set of levels.
type Classification struct {
	Tier     AlertTier
	Elevated []Pollutant
}

// Classifier maps forecast levels against limits to an alert tier.
type Classifier struct {
	limits Limits
}

// NewClassifier creates a Classifier for the given limits.
func NewClassifier(limits Limits) *Classifier {
	return &Classifier{limits: limits}
}

// Classify evaluates pollutants in canonical order. The tier only ever rises:
//   - above 100% of the limit escalates to Emergency
//   - above 75% escalates to at least Preventive
//   - PM2.5 above 0.8 of its limit escalates to at least Preventive
//   - two or more pollutants above 75% escalate to Emergency
//
// A pollutant above 75% counts as elevated whether or not it raised the
// tier. The multi-pollutant rule is applied after all pollutants are counted.
func (c *Classifier) Classify(levels Levels) Classification {
	tier := AlertNormal
	var elevated []Pollutant

	for _, p := range Pollutants() {
		percent := c.limits.Percent(p, levels[p])
		switch {
		case percent > ExceededPercent:
			tier = AlertEmergency
			elevated = append(elevated, p)
		case percent > ElevatedPercent:
			tier = max(tier, AlertPreventive)
			elevated = append(elevated, p)
		}
	}

	if c.limits.Fraction(PM25, levels[PM25]) > PM25PreventiveFraction {
		tier = max(tier, AlertPreventive)
	}

	if len(elevated) >= MultiPollutantEscalation {
		tier = AlertEmergency
	}

	return Classification{Tier: tier, Elevated: elevated}
}
