package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
	"github.com/couchcryptid/air-quality-forecast/internal/observability"
)

// ZoneStore keeps the latest assessment per zone and the reports built from
// them.
type ZoneStore interface {
	PutAssessment(a domain.Assessment)
	Assessments() []domain.Assessment
	PutReport(r domain.Report)
}

// ReportExporter writes a report somewhere durable and returns its location.
type ReportExporter interface {
	Export(ctx context.Context, report domain.Report) (string, error)
}

// Reporter implements ReportSink. Each published batch refreshes the latest
// state of its zones, then rebuilds the report of every month the batch
// touched from all zones whose latest assessment falls in that month.
type Reporter struct {
	limits   domain.Limits
	store    ZoneStore
	exporter ReportExporter
	logger   *slog.Logger
	metrics  *observability.Metrics

	// mu serializes rebuilds from the pipeline and from scheduled refreshes.
	mu sync.Mutex
}

// NewReporter creates a Reporter. exporter may be nil to keep reports in the
// store only.
func NewReporter(limits domain.Limits, store ZoneStore, exporter ReportExporter, logger *slog.Logger, metrics *observability.Metrics) *Reporter {
	return &Reporter{
		limits:   limits,
		store:    store,
		exporter: exporter,
		logger:   logger,
		metrics:  metrics,
	}
}

// Publish records the batch and refreshes the affected monthly reports.
// Export failures do not stop the remaining months; they are joined into the
// returned error.
func (r *Reporter) Publish(ctx context.Context, assessments []domain.Assessment) error {
	months := make([]int, 0, 1)
	for _, a := range assessments {
		r.store.PutAssessment(a)
		if !slices.Contains(months, a.Month) {
			months = append(months, a.Month)
		}
	}
	return r.rebuild(ctx, months)
}

// Refresh rebuilds and re-exports the report of every month that has at least
// one zone in the store.
func (r *Reporter) Refresh(ctx context.Context) error {
	var months []int
	for _, a := range r.store.Assessments() {
		if !slices.Contains(months, a.Month) {
			months = append(months, a.Month)
		}
	}
	return r.rebuild(ctx, months)
}

func (r *Reporter) rebuild(ctx context.Context, months []int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slices.Sort(months)

	latest := r.store.Assessments()
	generatedAt := domain.Now()

	var errs []error
	for _, month := range months {
		inMonth := make([]domain.Assessment, 0, len(latest))
		for _, a := range latest {
			if a.Month == month {
				inMonth = append(inMonth, a)
			}
		}

		report := domain.BuildReport(inMonth, month, r.limits, generatedAt)
		r.store.PutReport(report)

		if err := r.export(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Reporter) export(ctx context.Context, report domain.Report) error {
	if r.exporter == nil {
		return nil
	}
	path, err := r.exporter.Export(ctx, report)
	if err != nil {
		r.metrics.ReportExports.WithLabelValues("error").Inc()
		return fmt.Errorf("month %d: %w", report.Month, err)
	}
	r.metrics.ReportExports.WithLabelValues("success").Inc()
	r.logger.Info("report exported",
		"month", report.Month,
		"path", path,
		"zones", len(report.Zones),
		"emergency", report.Totals.Emergency,
	)
	return nil
}
