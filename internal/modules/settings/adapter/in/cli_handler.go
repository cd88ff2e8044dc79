package in

import (
	"context"

	"tempo/internal/modules/settings/dto"
	settingsin "tempo/internal/modules/settings/port/in"
)

type CLIHandler struct {
	usecase settingsin.Usecase
}

func NewCLIHandler(usecase settingsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Durations(ctx context.Context) (dto.DurationsOutput, error) {
	return h.usecase.Durations(ctx)
}

func (h CLIHandler) SetDurations(ctx context.Context, focus, shortBreak, longBreak int) error {
	return h.usecase.SetDurations(ctx, dto.DurationsInput{Focus: focus, ShortBreak: shortBreak, LongBreak: longBreak})
}

func (h CLIHandler) Get(ctx context.Context, key string) (dto.SettingOutput, error) {
	return h.usecase.Get(ctx, key)
}

func (h CLIHandler) Set(ctx context.Context, key, value string) error {
	return h.usecase.Set(ctx, key, value)
}

func (h CLIHandler) All(ctx context.Context) ([]dto.SettingOutput, error) {
	return h.usecase.All(ctx)
}
