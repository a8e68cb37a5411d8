// Command validate performs data integrity checks on a zone readings fixture
// and on the monitoring cycle run over it: reading schema, input ranges,
// history synthesis, averaging, forecasting, classification and the report
// built from the results.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -readings data/mock/zone_readings.json \
//	  -seeds 1,42,2024
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/adapter/textreport"
	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/jonboulle/clockwork"
)

var observedAt = time.Date(2025, time.August, 14, 8, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	readingsPath := flag.String("readings", "", "path to the zone readings JSON fixture")
	seedList := flag.String("seeds", "1,42,2024", "comma-separated history seeds to run the cycle with")
	flag.Parse()

	if *readingsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	seeds, err := parseSeeds(*seedList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	if code := run(*readingsPath, seeds); code != 0 {
		os.Exit(code)
	}
}

func run(readingsPath string, seeds []uint64) int {
	// Set a fixed clock matching genmock for ID reproducibility.
	domain.SetClock(clockwork.NewFakeClockAt(observedAt.Add(time.Hour)))
	defer domain.SetClock(nil)

	// ── Load data ──
	fmt.Println("=== Air Quality Integrity Validation ===")
	fmt.Println()

	payloads, err := loadJSON[json.RawMessage](readingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load readings JSON: %v\n", err)
		return 1
	}

	schema, readings := validateSchema(payloads)

	// ── Run validation phases ──
	phases := []*phase{
		schema,
		validateRanges(readings),
		validateCycle(readings, seeds),
		validateReport(readings, seeds[0]),
	}

	// ── Report results ──
	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Readings: %d in fixture, %d parsed, %d seeds\n", len(payloads), len(readings), len(seeds))

	// Print detailed errors.
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Data loading ──

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func parseSeeds(list string) ([]uint64, error) {
	var seeds []uint64
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", s, err)
		}
		seeds = append(seeds, n)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("no seeds given")
	}
	return seeds, nil
}

// ── Phase 1: Schema ──
// Validates every fixture entry parses as a reading with a unique zone.

func validateSchema(payloads []json.RawMessage) (*phase, []domain.Reading) {
	p := &phase{name: "Phase 1: Reading Schema"}

	if len(payloads) == 0 {
		p.errorf("fixture contains no readings")
	}

	seen := map[string]int{}
	readings := make([]domain.Reading, 0, len(payloads))
	for i, payload := range payloads {
		r, err := domain.ParseRawEvent(domain.RawEvent{Value: payload, Timestamp: observedAt})
		if err != nil {
			p.errorf("reading %d: %v", i, err)
			continue
		}
		if prev, ok := seen[r.Zone]; ok {
			p.errorf("reading %d: zone %q duplicates reading %d", i, r.Zone, prev)
			continue
		}
		seen[r.Zone] = i
		readings = append(readings, r)
	}
	return p, readings
}

// ── Phase 2: Input Ranges ──

func validateRanges(readings []domain.Reading) *phase {
	p := &phase{name: "Phase 2: Input Ranges"}

	ranges := domain.DefaultInputRanges()
	for _, r := range readings {
		if err := ranges.Validate(r); err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				p.errorf("%s: %s", r.Zone, line)
			}
		}
	}
	return p
}

// ── Phase 3: Monitoring Cycle ──
// Runs every reading through each cycle stage and checks the stage outputs.

func validateCycle(readings []domain.Reading, seeds []uint64) *phase {
	p := &phase{name: "Phase 3: Monitoring Cycle"}

	limits := domain.DefaultLimits()
	classifier := domain.NewClassifier(limits)

	for _, seed := range seeds {
		assessor := domain.NewAssessor(limits, domain.DefaultSeasonalFactors(), domain.NewSeededHistoryGenerator(seed))
		for _, r := range readings {
			label := fmt.Sprintf("%s (seed %d)", r.Zone, seed)

			seeded, _, err := assessor.Seed(r.ToZone())
			if err != nil {
				p.errorf("%s: seed: %v", label, err)
				continue
			}
			checkHistory(p.errorf, label, seeded.History)

			smoothed := assessor.Smooth(seeded)
			checkAverage(p.errorf, label, seeded, smoothed.Pollutants)

			predicted := assessor.Predict(smoothed, r.Month)
			checkForecast(p.errorf, label, predicted.Pollutants)

			final, c := assessor.Classify(predicted)
			checkClassification(p.errorf, label, limits, final.Pollutants, c)

			if again := classifier.Classify(final.Pollutants); again.Tier != c.Tier {
				p.errorf("%s: classification not reproducible: %s then %s", label, c.Tier, again.Tier)
			}
		}
	}
	return p
}

func checkHistory(pf func(string, ...any), label string, h domain.History) {
	if len(h) != domain.HistoryDays {
		pf("%s: history has %d days, want %d", label, len(h), domain.HistoryDays)
	}
	for d, snap := range h {
		for _, pol := range domain.Pollutants() {
			if snap.Get(pol) < 0 {
				pf("%s: history day %d %s negative: %g", label, d, pol, snap.Get(pol))
			}
		}
	}
}

func checkAverage(pf func(string, ...any), label string, seeded domain.Zone, avg domain.Levels) {
	for _, pol := range domain.Pollutants() {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, snap := range seeded.History {
			v := snap.Get(pol)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		v := avg.Get(pol)
		if len(seeded.History) > 0 && (v < lo-1e-9 || v > hi+1e-9) {
			pf("%s: %s average %g outside history range [%g, %g]", label, pol, v, lo, hi)
		}
	}
}

func checkForecast(pf func(string, ...any), label string, forecast domain.Levels) {
	for _, pol := range domain.Pollutants() {
		v := forecast.Get(pol)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			pf("%s: %s forecast invalid: %g", label, pol, v)
		}
	}
}

func checkClassification(pf func(string, ...any), label string, limits domain.Limits, levels domain.Levels, c domain.Classification) {
	var exceeded bool
	for _, pol := range domain.Pollutants() {
		if limits.Percent(pol, levels.Get(pol)) > domain.ExceededPercent {
			exceeded = true
		}
	}
	if exceeded && c.Tier != domain.AlertEmergency {
		pf("%s: a pollutant exceeds its limit but tier is %s", label, c.Tier)
	}
	if len(c.Elevated) >= domain.MultiPollutantEscalation && c.Tier != domain.AlertEmergency {
		pf("%s: %d elevated pollutants but tier is %s", label, len(c.Elevated), c.Tier)
	}
	if len(c.Elevated) == 0 && c.Tier == domain.AlertEmergency {
		pf("%s: emergency with no elevated pollutant", label)
	}
}

// ── Phase 4: Report ──
// Validates the report built from the cycle and its text rendering.

func validateReport(readings []domain.Reading, seed uint64) *phase {
	p := &phase{name: "Phase 4: Report"}

	limits := domain.DefaultLimits()
	assessor := domain.NewAssessor(limits, domain.DefaultSeasonalFactors(), domain.NewSeededHistoryGenerator(seed))

	assessments := make([]domain.Assessment, 0, len(readings))
	for _, r := range readings {
		a, err := assessor.Assess(r)
		if err != nil {
			p.errorf("%s: assess: %v", r.Zone, err)
			continue
		}
		assessments = append(assessments, a)
	}

	report := domain.BuildReport(assessments, int(observedAt.Month()), limits, domain.Now())

	totals := report.Totals.Normal + report.Totals.Preventive + report.Totals.Emergency
	if totals != len(assessments) {
		p.errorf("tier totals %d, want %d zones", totals, len(assessments))
	}
	if len(report.Zones) != len(assessments) {
		p.errorf("report has %d zones, want %d", len(report.Zones), len(assessments))
	}

	for i, z := range report.Zones {
		if z.Name != assessments[i].Zone {
			p.errorf("zone %d: report order %q, want %q", i, z.Name, assessments[i].Zone)
		}
		if len(z.Pollutants) != domain.NumPollutants {
			p.errorf("%s: %d pollutant summaries, want %d", z.Name, len(z.Pollutants), domain.NumPollutants)
		}
		for _, s := range z.Pollutants {
			if want := domain.BandFor(s.Percent); s.Band != want {
				p.errorf("%s %s: band %s at %.1f%%, want %s", z.Name, s.Pollutant, s.Band, s.Percent, want)
			}
		}
		if z.Alert == domain.AlertEmergency && len(z.Recommendations) == 0 {
			p.errorf("%s: emergency zone without recommendations", z.Name)
		}
	}

	var buf bytes.Buffer
	if err := textreport.Render(&buf, report); err != nil {
		p.errorf("render: %v", err)
		return p
	}
	text := buf.String()
	for _, z := range report.Zones {
		if !strings.Contains(text, "ZONE: "+z.Name+"\n") {
			p.errorf("rendered report missing zone %q", z.Name)
		}
	}
	if !strings.HasSuffix(text, "--- End of report ---\n") {
		p.errorf("rendered report missing trailer")
	}
	return p
}
