package textreport

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport() domain.Report {
	assessments := []domain.Assessment{
		{
			Zone:     "Quito-Centro",
			Forecast: domain.Levels{domain.PM25: 40, domain.PM10: 10, domain.NO2: 10, domain.SO2: 10},
			Weather:  domain.Weather{TemperatureC: 14.5, HumidityPct: 70, WindKmh: 8},
			Alert:    domain.AlertEmergency,
		},
		{
			Zone:     "Loja",
			Forecast: domain.Levels{domain.PM25: 5, domain.PM10: 10, domain.NO2: 20, domain.SO2: 5},
			Weather:  domain.Weather{TemperatureC: 18, HumidityPct: 55, WindKmh: 12},
			Alert:    domain.AlertNormal,
		},
	}
	generated := time.Date(2025, time.August, 14, 9, 30, 0, 0, time.UTC)
	return domain.BuildReport(assessments, 8, domain.DefaultLimits(), generated)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testReport()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, heavyRule+"\n"+domain.ReportTitle+"\n"))
	assert.Contains(t, out, "Month: 8\n")
	assert.Contains(t, out, "Generated at: Thu, 14 Aug 2025 09:30:00 UTC\n")
	assert.Contains(t, out, "Regulatory basis: "+domain.RegulatoryBasis)

	assert.Contains(t, out, "ZONE: Quito-Centro\n")
	assert.Contains(t, out, "  PM2.5: 40.00 μg/m³ (108.1% of limit 37.00) HAZARDOUS\n")
	assert.Contains(t, out, "  PM10: 10.00 μg/m³ (13.3% of limit 75.00) GOOD\n")
	assert.Contains(t, out, "  Temperature: 14.5°C\n")
	assert.Contains(t, out, "  Humidity: 70.0%\n")
	assert.Contains(t, out, "  Wind: 8.0 km/h\n")
	assert.Contains(t, out, "Alert level: EMERGENCY\n")
	assert.Contains(t, out, "  - Stay indoors as much as possible\n")

	assert.Contains(t, out, "ZONE: Loja\n")
	assert.Contains(t, out, "Alert level: NORMAL\n")

	assert.Contains(t, out, "Zones in normal state: 1\n")
	assert.Contains(t, out, "Zones in preventive alert: 0\n")
	assert.Contains(t, out, "Zones in emergency: 1\n")
	assert.True(t, strings.HasSuffix(out, "--- End of report ---\n"))

	// Zones appear in report order.
	assert.Less(t, strings.Index(out, "ZONE: Quito-Centro"), strings.Index(out, "ZONE: Loja"))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriteError(t *testing.T) {
	err := Render(failingWriter{}, testReport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestExport_WritesAndOverwrites(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(filepath.Join(dir, "reports"))

	path, err := e.Export(context.Background(), testReport())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "air_quality_report_08.txt"), path)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(first), "ZONE: Quito-Centro")

	smaller := domain.BuildReport(nil, 8, domain.DefaultLimits(), time.Time{})
	_, err = e.Export(context.Background(), smaller)
	require.NoError(t, err)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(second), "ZONE:")
	assert.Contains(t, string(second), "Zones in emergency: 0")

	entries, err := os.ReadDir(filepath.Join(dir, "reports"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestExport_UnwritableDestination(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	e := NewExporter(filepath.Join(blocker, "reports"))
	_, err := e.Export(context.Background(), testReport())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExport))
}

func TestExport_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExporter(t.TempDir()).Export(ctx, testReport())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExport))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "air_quality_report_03.txt", FileName(3))
	assert.Equal(t, "air_quality_report_12.txt", FileName(12))
}
