package usecase

import (
	"context"
	"fmt"

	eventsdomain "tempo/internal/modules/events/domain"
	"tempo/internal/modules/timer/domain"
	"tempo/internal/modules/timer/dto"
	"tempo/internal/modules/timer/port/out"
	"tempo/internal/modules/timer/service"
	apperrors "tempo/internal/platform/errors"
)

type Interactor struct {
	service *service.TimerService
	ledger  out.SessionLedger
}

func NewInteractor(svc *service.TimerService, ledger out.SessionLedger) *Interactor {
	return &Interactor{service: svc, ledger: ledger}
}

func (i *Interactor) Start(ctx context.Context) error {
	return i.service.Start(ctx)
}

func (i *Interactor) Toggle(ctx context.Context) error {
	return i.service.Toggle(ctx)
}

func (i *Interactor) Tick(ctx context.Context) {
	i.service.Tick(ctx)
}

func (i *Interactor) Complete(ctx context.Context) error {
	i.service.Complete(ctx, service.CompletedByUser)
	return nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	i.service.Reset(ctx, "reset")
	return nil
}

func (i *Interactor) SetMode(ctx context.Context, input dto.ModeInput) error {
	mode := domain.Mode(input.Mode)
	if err := mode.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	return i.service.SetMode(ctx, mode)
}

func (i *Interactor) MarkInterruption(ctx context.Context, input dto.InterruptionInput) error {
	if input.Kind == "" {
		return fmt.Errorf("%w: interruption kind is required", apperrors.ErrInvalidInput)
	}
	severity := eventsdomain.Severity(input.Severity)
	if input.Severity == "" {
		severity = eventsdomain.SeverityMedium
	} else if err := severity.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	i.service.MarkInterruption(ctx, input.Kind, severity)
	return nil
}

func (i *Interactor) RecordSignal(ctx context.Context, input dto.SignalInput) error {
	kind := eventsdomain.Kind(input.Kind)
	if err := kind.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	i.service.RecordSignal(ctx, kind, input.Metadata)
	return nil
}

func (i *Interactor) Shutdown(ctx context.Context) {
	i.service.Shutdown(ctx)
}

func (i *Interactor) Status(ctx context.Context) dto.StatusOutput {
	snapshot := i.service.Status(ctx)
	return dto.StatusOutput{
		Active:            snapshot.Active,
		SessionID:         snapshot.SessionID,
		Mode:              string(snapshot.Mode),
		PlannedSeconds:    snapshot.PlannedSeconds,
		ActiveSeconds:     snapshot.ActiveSeconds,
		TotalSeconds:      snapshot.TotalSeconds,
		PauseSeconds:      snapshot.PauseSeconds,
		RemainingSeconds:  snapshot.RemainingSeconds,
		IsPaused:          snapshot.IsPaused,
		InterruptionCount: snapshot.InterruptionCount,
		TaskName:          snapshot.TaskName,
		Category:          snapshot.Category,
	}
}

func (i *Interactor) ListSessions(ctx context.Context, input dto.ListSessionsInput) ([]dto.SessionOutput, error) {
	if input.Limit < 0 {
		return nil, fmt.Errorf("%w: limit must be non-negative", apperrors.ErrInvalidInput)
	}
	records, err := i.ledger.ListSessions(ctx, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	outputs := make([]dto.SessionOutput, 0, len(records))
	for _, record := range records {
		outputs = append(outputs, mapRecord(record))
	}
	return outputs, nil
}

func (i *Interactor) DeleteSession(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	return i.ledger.DeleteSession(ctx, id)
}

func mapRecord(record domain.Record) dto.SessionOutput {
	return dto.SessionOutput{
		ID:                     record.ID,
		StartTime:              record.StartTime,
		EndTime:                record.EndTime,
		DurationSeconds:        record.DurationSeconds,
		PlannedDurationMinutes: record.PlannedDurationMinutes,
		Mode:                   string(record.Mode),
		Completed:              record.Completed,
		TaskName:               record.TaskName,
		Category:               record.Category,
		InterruptionCount:      record.InterruptionCount,
	}
}
