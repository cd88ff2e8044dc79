package in

import (
	"context"

	"tempo/internal/modules/settings/dto"
)

type Usecase interface {
	Durations(ctx context.Context) (dto.DurationsOutput, error)
	SetDurations(ctx context.Context, input dto.DurationsInput) error
	Get(ctx context.Context, key string) (dto.SettingOutput, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) ([]dto.SettingOutput, error)
}
