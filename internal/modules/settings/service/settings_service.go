package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"tempo/internal/modules/settings/domain"
	settingsout "tempo/internal/modules/settings/port/out"
	"tempo/internal/platform/config"
	apperrors "tempo/internal/platform/errors"
)

// SettingsService layers stored overrides on top of the configured defaults.
// Unset or unparseable values fall back silently; settings never block a
// session from starting.
type SettingsService struct {
	store    settingsout.SettingsStore
	defaults config.DurationDefaults
}

func NewSettingsService(store settingsout.SettingsStore, defaults config.DurationDefaults) *SettingsService {
	return &SettingsService{store: store, defaults: defaults}
}

// Durations returns planned durations in minutes, satisfying the session
// engine's duration source.
func (s *SettingsService) Durations(ctx context.Context) (int, int, int, error) {
	focus := s.minutes(ctx, domain.KeyFocusDuration, s.defaults.Focus)
	shortBreak := s.minutes(ctx, domain.KeyShortBreakDuration, s.defaults.ShortBreak)
	longBreak := s.minutes(ctx, domain.KeyLongBreakDuration, s.defaults.LongBreak)
	return focus, shortBreak, longBreak, nil
}

func (s *SettingsService) SetDurations(ctx context.Context, durations domain.Durations) error {
	if err := durations.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	pairs := map[string]int{
		domain.KeyFocusDuration:      durations.Focus,
		domain.KeyShortBreakDuration: durations.ShortBreak,
		domain.KeyLongBreakDuration:  durations.LongBreak,
	}
	for key, minutes := range pairs {
		if err := s.store.Set(ctx, key, strconv.Itoa(minutes)); err != nil {
			return fmt.Errorf("storing %s: %w", key, err)
		}
	}
	return nil
}

func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	return s.store.Get(ctx, key)
}

func (s *SettingsService) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: setting key is required", apperrors.ErrInvalidInput)
	}
	return s.store.Set(ctx, key, value)
}

func (s *SettingsService) All(ctx context.Context) (map[string]string, error) {
	return s.store.All(ctx)
}

func (s *SettingsService) minutes(ctx context.Context, key string, fallback int) int {
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, apperrors.ErrNotFound) {
		return fallback
	}
	if err != nil {
		return fallback
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return fallback
	}
	return minutes
}
