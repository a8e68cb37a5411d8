// Command genmock generates the zone readings fixture used by the pipeline
// and integration test suites. It runs every generated reading through the
// actual domain package to print the tiers the tests should assert.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out data/mock/zone_readings.json \
//	  -seeds 1,42,2024
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/jonboulle/clockwork"
)

var observedAt = time.Date(2025, time.August, 14, 8, 0, 0, 0, time.UTC)

// zoneDef is one fixture zone. Levels are picked so each zone lands in its
// tier for any synthesized history.
type zoneDef struct {
	name       string
	pollutants domain.Levels
	weather    domain.Weather
}

var zones = []zoneDef{
	{
		name:       "Quito-Centro",
		pollutants: domain.Levels{domain.PM25: 30, domain.PM10: 40, domain.NO2: 50, domain.SO2: 20},
		weather:    domain.Weather{TemperatureC: 14, HumidityPct: 65, WindKmh: 8},
	},
	{
		name:       "Guayaquil-Norte",
		pollutants: domain.Levels{domain.PM25: 12, domain.PM10: 40, domain.NO2: 40, domain.SO2: 15},
		weather:    domain.Weather{TemperatureC: 31, HumidityPct: 85, WindKmh: 4},
	},
	{
		name:       "Cuenca",
		pollutants: domain.Levels{domain.PM25: 8, domain.PM10: 20, domain.NO2: 30, domain.SO2: 10},
		weather:    domain.Weather{TemperatureC: 16, HumidityPct: 60, WindKmh: 20},
	},
	{
		name:       "Ambato",
		pollutants: domain.Levels{domain.PM25: 22, domain.PM10: 45, domain.NO2: 60, domain.SO2: 30},
		weather:    domain.Weather{TemperatureC: 15, HumidityPct: 55, WindKmh: 10},
	},
	{
		name:       "Loja",
		pollutants: domain.Levels{domain.PM25: 5, domain.PM10: 15, domain.NO2: 20, domain.SO2: 8},
		weather:    domain.Weather{TemperatureC: 18, HumidityPct: 70, WindKmh: 12},
	},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the readings JSON fixture")
	withHistory := flag.Bool("history", false, "embed a synthesized 30-day history in every reading")
	historySeed := flag.Uint64("history-seed", 1, "seed for embedded histories")
	seedList := flag.String("seeds", "1,42,2024", "comma-separated seeds to check tier stability against")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	seeds, err := parseSeeds(*seedList)
	if err != nil {
		return err
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(observedAt.Add(time.Hour)))
	defer domain.SetClock(nil)

	readings := buildReadings(*withHistory, *historySeed)
	log.Printf("zones: %d", len(readings))

	if err := writeJSON(*out, readings); err != nil {
		return fmt.Errorf("writing readings fixture: %w", err)
	}
	log.Printf("wrote readings fixture: %s", *out)

	return printStats(readings, seeds)
}

func buildReadings(withHistory bool, seed uint64) []domain.Reading {
	gen := domain.NewSeededHistoryGenerator(seed)
	readings := make([]domain.Reading, 0, len(zones))
	for _, z := range zones {
		r := domain.Reading{
			Zone:       z.name,
			ObservedAt: observedAt,
			Pollutants: z.pollutants,
			Weather:    z.weather,
		}
		if withHistory {
			r.History = gen.Generate(z.pollutants)
		}
		readings = append(readings, r)
	}
	return readings
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

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// printStats assesses every reading once per seed and prints the resulting
// tiers. A zone whose tier changes between seeds is flagged as unstable.
func printStats(readings []domain.Reading, seeds []uint64) error {
	tiers := make(map[string]map[domain.AlertTier]int, len(readings))
	totals := map[domain.AlertTier]int{}

	for _, seed := range seeds {
		assessor := domain.NewAssessor(domain.DefaultLimits(), domain.DefaultSeasonalFactors(), domain.NewSeededHistoryGenerator(seed))
		for _, r := range readings {
			r.Month = int(r.ObservedAt.Month())
			a, err := assessor.Assess(r)
			if err != nil {
				return fmt.Errorf("assess %s: %w", r.Zone, err)
			}
			if tiers[r.Zone] == nil {
				tiers[r.Zone] = map[domain.AlertTier]int{}
			}
			tiers[r.Zone][a.Alert]++
			totals[a.Alert]++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Seeds: %v\n", seeds)
	fmt.Printf("By tier (all seeds): normal=%d, preventive=%d, emergency=%d\n",
		totals[domain.AlertNormal], totals[domain.AlertPreventive], totals[domain.AlertEmergency])

	names := make([]string, 0, len(tiers))
	for name := range tiers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		counts := tiers[name]
		status := "stable"
		if len(counts) > 1 {
			status = "UNSTABLE"
		}
		fmt.Printf("  %-18s", name)
		for _, tier := range domain.AlertTiers() {
			if n := counts[tier]; n > 0 {
				fmt.Printf(" %s=%d", tier, n)
			}
		}
		fmt.Printf(" (%s)\n", status)
	}
	return nil
}
