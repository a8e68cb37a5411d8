package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/air-quality-forecast/internal/domain"
)

// ZoneTransformer implements Transformer by parsing a reading, checking it
// against the input ranges and running the monitoring cycle.
type ZoneTransformer struct {
	assessor *domain.Assessor
	ranges   domain.InputRanges
	clamp    bool
	logger   *slog.Logger
}

// NewTransformer creates a ZoneTransformer. With clamp set, out-of-range
// fields are limited to their range instead of rejecting the reading.
func NewTransformer(assessor *domain.Assessor, ranges domain.InputRanges, clamp bool, logger *slog.Logger) *ZoneTransformer {
	return &ZoneTransformer{
		assessor: assessor,
		ranges:   ranges,
		clamp:    clamp,
		logger:   logger,
	}
}

func (t *ZoneTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.Assessment, error) {
	reading, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.Assessment{}, err
	}

	if t.clamp {
		var adjusted []string
		reading, adjusted = t.ranges.Clamp(reading)
		if len(adjusted) > 0 {
			t.logger.Warn("reading clamped to input ranges", "zone", reading.Zone, "adjusted", adjusted)
		}
	} else if err := t.ranges.Validate(reading); err != nil {
		return domain.Assessment{}, fmt.Errorf("zone %q: %w", reading.Zone, err)
	}

	return t.assessor.Assess(reading)
}
