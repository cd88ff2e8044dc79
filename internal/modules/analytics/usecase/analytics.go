package usecase

import (
	"context"
	"fmt"

	"tempo/internal/modules/analytics/dto"
	analyticsin "tempo/internal/modules/analytics/port/in"
	"tempo/internal/modules/analytics/service"
	eventsdomain "tempo/internal/modules/events/domain"
	timerdomain "tempo/internal/modules/timer/domain"
	apperrors "tempo/internal/platform/errors"
)

type Interactor struct {
	analyzer *service.Analyzer
}

func NewInteractor(analyzer *service.Analyzer) analyticsin.Usecase {
	return &Interactor{analyzer: analyzer}
}

func (i *Interactor) InterruptionPattern(ctx context.Context, sessionID string) (dto.InterruptionPatternOutput, error) {
	if sessionID == "" {
		return dto.InterruptionPatternOutput{}, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	pattern, err := i.analyzer.InterruptionPattern(ctx, sessionID)
	if err != nil {
		return dto.InterruptionPatternOutput{}, err
	}
	return dto.InterruptionPatternOutput{
		SessionID:      pattern.SessionID,
		PlannedSeconds: pattern.PlannedSeconds,
		Total:          pattern.Total,
		Early:          pattern.Phases.Early,
		Middle:         pattern.Phases.Middle,
		Late:           pattern.Phases.Late,
		MeanGapSeconds: pattern.MeanGapSeconds,
		Severity:       pattern.Severity,
	}, nil
}

func (i *Interactor) QualityStats(ctx context.Context, modes []string) (dto.QualityStatsOutput, error) {
	for _, mode := range modes {
		if err := timerdomain.Mode(mode).Validate(); err != nil {
			return dto.QualityStatsOutput{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
		}
	}
	stats, err := i.analyzer.QualityStats(ctx, modes)
	if err != nil {
		return dto.QualityStatsOutput{}, err
	}
	return dto.QualityStatsOutput{
		Deep:       stats.Deep,
		Moderate:   stats.Moderate,
		Distracted: stats.Distracted,
		Total:      stats.Total,
		Summary:    stats.Summary,
	}, nil
}

func (i *Interactor) Heatmap(ctx context.Context, input dto.HeatmapInput) (dto.HeatmapOutput, error) {
	if input.Days <= 0 {
		return dto.HeatmapOutput{}, fmt.Errorf("%w: days must be positive", apperrors.ErrInvalidInput)
	}
	kinds := make([]eventsdomain.Kind, 0, len(input.Kinds))
	for _, raw := range input.Kinds {
		kind := eventsdomain.Kind(raw)
		if err := kind.Validate(); err != nil {
			return dto.HeatmapOutput{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
		}
		kinds = append(kinds, kind)
	}
	heatmap, err := i.analyzer.Heatmap(ctx, input.Days, kinds)
	if err != nil {
		return dto.HeatmapOutput{}, err
	}
	return dto.HeatmapOutput{Days: heatmap.Days, Counts: heatmap.Counts}, nil
}

func (i *Interactor) DailyTrend(ctx context.Context, input dto.TrendInput) ([]dto.DayTotalOutput, error) {
	if input.Days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", apperrors.ErrInvalidInput)
	}
	trend, err := i.analyzer.DailyTrend(ctx, input.Days)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DayTotalOutput, 0, len(trend))
	for _, day := range trend {
		out = append(out, dto.DayTotalOutput{Day: day.Day, ActiveSeconds: day.ActiveSeconds, Sessions: day.Sessions})
	}
	return out, nil
}

func (i *Interactor) HourlyProfile(ctx context.Context, input dto.TrendInput) ([]dto.HourTotalOutput, error) {
	if input.Days <= 0 {
		return nil, fmt.Errorf("%w: days must be positive", apperrors.ErrInvalidInput)
	}
	profile, err := i.analyzer.HourlyProfile(ctx, input.Days)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HourTotalOutput, 0, len(profile))
	for _, hour := range profile {
		out = append(out, dto.HourTotalOutput{Hour: hour.Hour, ActiveSeconds: hour.ActiveSeconds, Sessions: hour.Sessions})
	}
	return out, nil
}

func (i *Interactor) CompletionRate(ctx context.Context, input dto.TrendInput) (dto.CompletionRateOutput, error) {
	if input.Days <= 0 {
		return dto.CompletionRateOutput{}, fmt.Errorf("%w: days must be positive", apperrors.ErrInvalidInput)
	}
	rate, err := i.analyzer.CompletionRate(ctx, input.Days)
	if err != nil {
		return dto.CompletionRateOutput{}, err
	}
	return dto.CompletionRateOutput{Completed: rate.Completed, Total: rate.Total}, nil
}
