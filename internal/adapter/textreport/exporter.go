// Package textreport writes air quality reports as flat, human-readable text
// files. Each export replaces the destination file entirely.
package textreport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

// ErrExport wraps every failure to write a report file.
var ErrExport = errors.New("report export failed")

const (
	heavyRule = "=========================================="
	lightRule = "----------------------------------------"
)

// Exporter writes reports to files under a directory.
type Exporter struct {
	dir string
}

// NewExporter creates an Exporter writing into dir. The directory is created
// on first export if missing.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// FileName returns the report file name for month.
func FileName(month int) string {
	return fmt.Sprintf("air_quality_report_%02d.txt", month)
}

// Path returns the file the report for month is written to.
func (e *Exporter) Path(month int) string {
	return filepath.Join(e.dir, FileName(month))
}

// Export writes the report to its month's file and returns the path.
func (e *Exporter) Export(ctx context.Context, report domain.Report) (string, error) {
	path := e.Path(report.Month)
	if err := ctx.Err(); err != nil {
		return path, fmt.Errorf("%w: %w", ErrExport, err)
	}
	if err := WriteFile(path, report); err != nil {
		return path, err
	}
	return path, nil
}

// WriteFile renders the report into path through a temporary file in the
// same directory, so readers never observe a partially written report.
func WriteFile(path string, report domain.Report) error {
	var buf bytes.Buffer
	if err := Render(&buf, report); err != nil {
		return fmt.Errorf("%w: render: %w", ErrExport, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // no-op after a successful rename

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", ErrExport, err)
	}
	return nil
}

// Render writes the text form of report to w.
func Render(w io.Writer, report domain.Report) error {
	p := &printer{w: w}

	p.line(heavyRule)
	p.line(report.Title)
	p.line(heavyRule)
	p.printf("Month: %d\n", report.Month)
	p.printf("Generated at: %s\n", report.GeneratedAt.Format(time.RFC1123))
	p.printf("Regulatory basis: %s\n\n", report.RegulatoryBasis)

	for _, z := range report.Zones {
		p.printf("ZONE: %s\n", z.Name)
		p.line(lightRule)

		p.line("Forecast levels:")
		for _, s := range z.Pollutants {
			p.printf("  %s: %.2f %s (%.1f%% of limit %.2f) %s\n",
				s.Pollutant, s.Level, s.Unit, s.Percent, s.Limit, strings.ToUpper(string(s.Band)))
		}

		p.line("")
		p.line("Weather conditions:")
		p.printf("  Temperature: %.1f°C\n", z.Weather.TemperatureC)
		p.printf("  Humidity: %.1f%%\n", z.Weather.HumidityPct)
		p.printf("  Wind: %.1f km/h\n", z.Weather.WindKmh)

		p.line("")
		p.printf("Alert level: %s\n", z.Alert.Label())

		if len(z.Recommendations) > 0 {
			p.line("Recommendations:")
			for _, r := range z.Recommendations {
				p.printf("  - %s\n", r)
			}
		}
		p.line("")
	}

	p.line("SUMMARY")
	p.line("=======")
	p.printf("Zones in normal state: %d\n", report.Totals.Normal)
	p.printf("Zones in preventive alert: %d\n", report.Totals.Preventive)
	p.printf("Zones in emergency: %d\n", report.Totals.Emergency)
	p.line("")
	p.line("--- End of report ---")

	return p.err
}

// printer remembers the first write error so Render can check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) line(s string) {
	p.printf("%s\n", s)
}
