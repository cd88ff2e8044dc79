package service

import (
	"context"
	"fmt"

	"tempo/internal/modules/analytics/domain"
	analyticsout "tempo/internal/modules/analytics/port/out"
	eventsdomain "tempo/internal/modules/events/domain"
	"tempo/internal/platform/clock"
)

// Analyzer computes report structures from flushed data. It holds no state
// beyond its dependencies, so concurrent calls are safe.
type Analyzer struct {
	reader analyticsout.Reader
	clock  clock.Clock
}

func NewAnalyzer(reader analyticsout.Reader, clk clock.Clock) *Analyzer {
	return &Analyzer{reader: reader, clock: clk}
}

func (a *Analyzer) InterruptionPattern(ctx context.Context, sessionID string) (domain.InterruptionPattern, error) {
	events, err := a.reader.InterruptionEvents(ctx, sessionID)
	if err != nil {
		return domain.InterruptionPattern{}, fmt.Errorf("loading interruption events: %w", err)
	}
	planned, err := a.reader.SessionPlannedSeconds(ctx, sessionID)
	if err != nil {
		return domain.InterruptionPattern{}, fmt.Errorf("loading session plan: %w", err)
	}
	return domain.BuildInterruptionPattern(sessionID, planned, events), nil
}

func (a *Analyzer) QualityStats(ctx context.Context, modes []string) (domain.QualityStats, error) {
	counts, err := a.reader.InterruptionCounts(ctx, modes)
	if err != nil {
		return domain.QualityStats{}, fmt.Errorf("loading interruption counts: %w", err)
	}
	return domain.BuildQualityStats(counts), nil
}

func (a *Analyzer) Heatmap(ctx context.Context, days int, kinds []eventsdomain.Kind) (domain.Heatmap, error) {
	now := a.clock.Now()
	cells, err := a.reader.HeatmapCells(ctx, domain.WindowStart(now, days), kinds)
	if err != nil {
		return domain.Heatmap{}, fmt.Errorf("loading heatmap cells: %w", err)
	}
	return domain.BuildHeatmap(now, days, cells), nil
}

func (a *Analyzer) DailyTrend(ctx context.Context, days int) ([]domain.DayTotal, error) {
	now := a.clock.Now()
	totals, err := a.reader.DailyTotals(ctx, domain.WindowStart(now, days))
	if err != nil {
		return nil, fmt.Errorf("loading daily totals: %w", err)
	}
	return domain.BuildDailyTrend(now, days, totals), nil
}

func (a *Analyzer) HourlyProfile(ctx context.Context, days int) ([]domain.HourTotal, error) {
	totals, err := a.reader.HourlyTotals(ctx, domain.WindowStart(a.clock.Now(), days))
	if err != nil {
		return nil, fmt.Errorf("loading hourly totals: %w", err)
	}
	return domain.BuildHourlyProfile(totals), nil
}

func (a *Analyzer) CompletionRate(ctx context.Context, days int) (domain.CompletionRate, error) {
	completed, total, err := a.reader.CompletionCounts(ctx, domain.WindowStart(a.clock.Now(), days))
	if err != nil {
		return domain.CompletionRate{}, fmt.Errorf("loading completion counts: %w", err)
	}
	return domain.Rate(completed, total), nil
}
