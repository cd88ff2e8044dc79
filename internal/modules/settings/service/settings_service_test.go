package service

import (
	"context"
	"fmt"
	"testing"

	"tempo/internal/modules/settings/domain"
	"tempo/internal/platform/config"
	apperrors "tempo/internal/platform/errors"
)

type fakeSettingsStore struct {
	values map[string]string
}

func (f *fakeSettingsStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrNotFound, key)
	}
	return value, nil
}

func (f *fakeSettingsStore) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettingsStore) All(context.Context) (map[string]string, error) {
	return f.values, nil
}

func defaults() config.DurationDefaults {
	return config.DurationDefaults{Focus: 25, ShortBreak: 5, LongBreak: 15}
}

func TestDurationsFallBackToDefaults(t *testing.T) {
	t.Parallel()

	svc := NewSettingsService(&fakeSettingsStore{values: map[string]string{}}, defaults())
	focus, shortBreak, longBreak, err := svc.Durations(context.Background())
	if err != nil {
		t.Fatalf("durations: %v", err)
	}
	if focus != 25 || shortBreak != 5 || longBreak != 15 {
		t.Fatalf("durations = %d/%d/%d, want 25/5/15", focus, shortBreak, longBreak)
	}
}

func TestDurationsPreferStoredOverrides(t *testing.T) {
	t.Parallel()

	store := &fakeSettingsStore{values: map[string]string{
		domain.KeyFocusDuration:      "50",
		domain.KeyShortBreakDuration: "garbage",
		domain.KeyLongBreakDuration:  "-3",
	}}
	svc := NewSettingsService(store, defaults())
	focus, shortBreak, longBreak, err := svc.Durations(context.Background())
	if err != nil {
		t.Fatalf("durations: %v", err)
	}
	if focus != 50 {
		t.Fatalf("focus = %d, want stored 50", focus)
	}
	// Unparseable and non-positive values fall back.
	if shortBreak != 5 || longBreak != 15 {
		t.Fatalf("breaks = %d/%d, want defaults 5/15", shortBreak, longBreak)
	}
}

func TestSetDurationsRoundTrip(t *testing.T) {
	t.Parallel()

	store := &fakeSettingsStore{values: map[string]string{}}
	svc := NewSettingsService(store, defaults())
	if err := svc.SetDurations(context.Background(), domain.Durations{Focus: 45, ShortBreak: 10, LongBreak: 20}); err != nil {
		t.Fatalf("set durations: %v", err)
	}
	focus, shortBreak, longBreak, err := svc.Durations(context.Background())
	if err != nil {
		t.Fatalf("durations: %v", err)
	}
	if focus != 45 || shortBreak != 10 || longBreak != 20 {
		t.Fatalf("durations = %d/%d/%d, want 45/10/20", focus, shortBreak, longBreak)
	}
}

func TestSetDurationsRejectsNonPositive(t *testing.T) {
	t.Parallel()

	svc := NewSettingsService(&fakeSettingsStore{values: map[string]string{}}, defaults())
	if err := svc.SetDurations(context.Background(), domain.Durations{Focus: 0, ShortBreak: 5, LongBreak: 15}); err == nil {
		t.Fatal("zero focus duration must be rejected")
	}
}
