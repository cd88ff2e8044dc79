package usecase

import (
	"context"
	"fmt"
	"sort"

	"tempo/internal/modules/settings/domain"
	"tempo/internal/modules/settings/dto"
	settingsin "tempo/internal/modules/settings/port/in"
	"tempo/internal/modules/settings/service"
	apperrors "tempo/internal/platform/errors"
)

type Interactor struct {
	service *service.SettingsService
}

func NewInteractor(svc *service.SettingsService) settingsin.Usecase {
	return &Interactor{service: svc}
}

func (i *Interactor) Durations(ctx context.Context) (dto.DurationsOutput, error) {
	focus, shortBreak, longBreak, err := i.service.Durations(ctx)
	if err != nil {
		return dto.DurationsOutput{}, err
	}
	return dto.DurationsOutput{Focus: focus, ShortBreak: shortBreak, LongBreak: longBreak}, nil
}

func (i *Interactor) SetDurations(ctx context.Context, input dto.DurationsInput) error {
	return i.service.SetDurations(ctx, domain.Durations{
		Focus:      input.Focus,
		ShortBreak: input.ShortBreak,
		LongBreak:  input.LongBreak,
	})
}

func (i *Interactor) Get(ctx context.Context, key string) (dto.SettingOutput, error) {
	if key == "" {
		return dto.SettingOutput{}, fmt.Errorf("%w: setting key is required", apperrors.ErrInvalidInput)
	}
	value, err := i.service.Get(ctx, key)
	if err != nil {
		return dto.SettingOutput{}, err
	}
	return dto.SettingOutput{Key: key, Value: value}, nil
}

func (i *Interactor) Set(ctx context.Context, key, value string) error {
	return i.service.Set(ctx, key, value)
}

func (i *Interactor) All(ctx context.Context) ([]dto.SettingOutput, error) {
	settings, err := i.service.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettingOutput, 0, len(settings))
	for key, value := range settings {
		out = append(out, dto.SettingOutput{Key: key, Value: value})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key < out[b].Key })
	return out, nil
}
