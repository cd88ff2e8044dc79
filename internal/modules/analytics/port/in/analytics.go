package in

import (
	"context"

	"tempo/internal/modules/analytics/dto"
)

// Usecase exposes the read-side derivations. All operations are side-effect
// free and safe to call while the event buffer flushes.
type Usecase interface {
	InterruptionPattern(ctx context.Context, sessionID string) (dto.InterruptionPatternOutput, error)
	QualityStats(ctx context.Context, modes []string) (dto.QualityStatsOutput, error)
	Heatmap(ctx context.Context, input dto.HeatmapInput) (dto.HeatmapOutput, error)
	DailyTrend(ctx context.Context, input dto.TrendInput) ([]dto.DayTotalOutput, error)
	HourlyProfile(ctx context.Context, input dto.TrendInput) ([]dto.HourTotalOutput, error)
	CompletionRate(ctx context.Context, input dto.TrendInput) (dto.CompletionRateOutput, error)
}
