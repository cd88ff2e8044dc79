package in

import (
	"context"

	"tempo/internal/modules/analytics/dto"
	analyticsin "tempo/internal/modules/analytics/port/in"
)

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) InterruptionPattern(ctx context.Context, sessionID string) (dto.InterruptionPatternOutput, error) {
	return h.usecase.InterruptionPattern(ctx, sessionID)
}

func (h CLIHandler) QualityStats(ctx context.Context, modes []string) (dto.QualityStatsOutput, error) {
	return h.usecase.QualityStats(ctx, modes)
}

func (h CLIHandler) Heatmap(ctx context.Context, days int, kinds []string) (dto.HeatmapOutput, error) {
	return h.usecase.Heatmap(ctx, dto.HeatmapInput{Days: days, Kinds: kinds})
}

func (h CLIHandler) DailyTrend(ctx context.Context, days int) ([]dto.DayTotalOutput, error) {
	return h.usecase.DailyTrend(ctx, dto.TrendInput{Days: days})
}

func (h CLIHandler) HourlyProfile(ctx context.Context, days int) ([]dto.HourTotalOutput, error) {
	return h.usecase.HourlyProfile(ctx, dto.TrendInput{Days: days})
}

func (h CLIHandler) CompletionRate(ctx context.Context, days int) (dto.CompletionRateOutput, error) {
	return h.usecase.CompletionRate(ctx, dto.TrendInput{Days: days})
}
