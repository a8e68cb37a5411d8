// Command airq runs one monitoring cycle over a file of zone readings and
// writes the resulting report. It uses the same assessment and reporting code
// as the forecast service, without Kafka.
//
// Usage:
//
//	go run ./cmd/airq \
//	  -input data/mock/zone_readings.json \
//	  -month 8 \
//	  -out reports
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/adapter/memstore"
	"github.com/couchcryptid/air-quality-forecast/internal/adapter/textreport"
	"github.com/couchcryptid/air-quality-forecast/internal/config"
	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/couchcryptid/air-quality-forecast/internal/observability"
	"github.com/couchcryptid/air-quality-forecast/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	input := flag.String("input", "", "JSON array of zone readings, or - for stdin")
	month := flag.Int("month", int(time.Now().Month()), "month (1-12) for readings that carry none")
	out := flag.String("out", "", "directory for the text report; empty prints to stdout only")
	seed := flag.Uint64("seed", 0, "history synthesis seed; 0 seeds from the current time")
	policy := flag.String("policy", config.InputPolicyReject, "out-of-range input policy: reject or clamp")
	asJSON := flag.Bool("json", false, "print the report as JSON instead of text")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		return errors.New("missing required flag: -input")
	}
	if *month < 1 || *month > 12 {
		return fmt.Errorf("invalid -month %d: must be 1-12", *month)
	}
	if *policy != config.InputPolicyReject && *policy != config.InputPolicyClamp {
		return fmt.Errorf("invalid -policy %q: must be reject or clamp", *policy)
	}

	readings, err := readInput(*input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	log.Printf("loaded %d readings", len(readings))

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	limits := domain.DefaultLimits()
	assessor := domain.NewAssessor(limits, domain.DefaultSeasonalFactors(), domain.NewSeededHistoryGenerator(*seed))
	transformer := pipeline.NewTransformer(assessor, domain.DefaultInputRanges(), *policy == config.InputPolicyClamp, logger)

	// Readings without a month take it from the message timestamp.
	now := time.Now().UTC()
	timestamp := time.Date(now.Year(), time.Month(*month), 1, 0, 0, 0, 0, time.UTC)

	ctx := context.Background()
	assessments := make([]domain.Assessment, 0, len(readings))
	var rejected int
	for i, r := range readings {
		a, err := transformer.Transform(ctx, domain.RawEvent{Value: r, Offset: int64(i), Timestamp: timestamp})
		if err != nil {
			log.Printf("reading %d rejected: %v", i, err)
			rejected++
			continue
		}
		assessments = append(assessments, a)
	}
	if len(assessments) == 0 {
		return errors.New("no valid readings")
	}

	var (
		exporter pipeline.ReportExporter
		files    *textreport.Exporter
	)
	if *out != "" {
		files = textreport.NewExporter(*out)
		exporter = files
	}
	store := memstore.New(len(assessments), nil)
	reporter := pipeline.NewReporter(limits, store, exporter, logger, observability.NewMetrics())
	exportErr := reporter.Publish(ctx, assessments)

	for _, m := range reportMonths(assessments) {
		report, ok := store.Report(m)
		if !ok {
			continue
		}
		if err := printReport(os.Stdout, report, *asJSON); err != nil {
			return fmt.Errorf("printing report: %w", err)
		}
		if files != nil && exportErr == nil {
			log.Printf("wrote %s", files.Path(m))
		}
	}

	log.Printf("assessed %d zones, rejected %d", len(assessments), rejected)
	if exportErr != nil {
		return exportErr
	}
	return nil
}

func readInput(path string) ([]json.RawMessage, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	var readings []json.RawMessage
	if err := json.Unmarshal(data, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}

// reportMonths lists the distinct months of assessments in first-seen order.
func reportMonths(assessments []domain.Assessment) []int {
	seen := make(map[int]bool)
	var months []int
	for _, a := range assessments {
		if !seen[a.Month] {
			seen[a.Month] = true
			months = append(months, a.Month)
		}
	}
	return months
}

func printReport(w io.Writer, report domain.Report, asJSON bool) error {
	if !asJSON {
		return textreport.Render(w, report)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
