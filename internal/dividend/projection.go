package dividend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Projection input errors. The Projector fails the call rather than guessing
// when inputs are outside the documented ranges.
var (
	ErrInvalidHorizon    = errors.New("invalid projection horizon")
	ErrInvalidBaseline   = errors.New("invalid baseline amount")
	ErrInvalidGrowthRate = errors.New("invalid growth rate")
)

// DefaultMaxHorizonYears caps the projection horizon when the configuration
// provides no limit. Matches the dashboard's 1..30 year slider.
const DefaultMaxHorizonYears = 30

// ProjectorConfig holds configuration options for the Projector.
type ProjectorConfig struct {
	// MaxHorizonYears is the largest accepted projection horizon.
	MaxHorizonYears int
}

// DefaultProjectorConfig returns the default projector configuration.
func DefaultProjectorConfig() ProjectorConfig {
	return ProjectorConfig{MaxHorizonYears: DefaultMaxHorizonYears}
}

// Projector produces deterministic compound-growth projections.
type Projector struct {
	logger          *slog.Logger
	maxHorizonYears int
}

// NewProjector creates a Projector with the given configuration.
func NewProjector(logger *slog.Logger, config ProjectorConfig) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxHorizonYears <= 0 {
		config.MaxHorizonYears = DefaultMaxHorizonYears
	}
	return &Projector{
		logger:          logger,
		maxHorizonYears: config.MaxHorizonYears,
	}
}

// MaxHorizonYears returns the configured horizon cap.
func (p *Projector) MaxHorizonYears() int { return p.maxHorizonYears }

// Project computes value(year) = baseline x (1+growth)^year for year
// 1..horizonYears, using the closed-form power for each point so long
// horizons do not accumulate iterative floating-point drift.
//
// A zero baseline yields an all-zero series for any growth rate. Growth
// rates below -1 are clamped to -1: a payout cannot go negative, so a
// decline of more than 100% floors at zero. This clamp is an assumption
// inherited from the dividend domain, pending product confirmation.
func (p *Projector) Project(ctx context.Context, baseline, growth float64, horizonYears int) (ProjectionSeries, error) {
	if horizonYears <= 0 || horizonYears > p.maxHorizonYears {
		return ProjectionSeries{}, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidHorizon, horizonYears, p.maxHorizonYears)
	}
	if math.IsNaN(baseline) || math.IsInf(baseline, 0) || baseline < 0 {
		return ProjectionSeries{}, fmt.Errorf("%w: %v", ErrInvalidBaseline, baseline)
	}
	if math.IsNaN(growth) || math.IsInf(growth, 0) {
		return ProjectionSeries{}, fmt.Errorf("%w: %v", ErrInvalidGrowthRate, growth)
	}

	if growth < -1 {
		p.logger.WarnContext(ctx, "clamping growth rate to payout floor",
			slog.Float64("requested", growth))
		growth = -1
	}

	values := make([]ProjectionPoint, horizonYears)
	for year := 1; year <= horizonYears; year++ {
		values[year-1] = ProjectionPoint{
			YearOffset: year,
			Amount:     baseline * math.Pow(1+growth, float64(year)),
		}
	}

	return ProjectionSeries{
		Baseline:     baseline,
		GrowthRate:   growth,
		HorizonYears: horizonYears,
		Values:       values,
	}, nil
}
