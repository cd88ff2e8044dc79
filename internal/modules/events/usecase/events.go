package usecase

import (
	"context"
	"fmt"

	"tempo/internal/modules/events/domain"
	"tempo/internal/modules/events/dto"
	eventsin "tempo/internal/modules/events/port/in"
	eventsout "tempo/internal/modules/events/port/out"
	"tempo/internal/modules/events/service"
	apperrors "tempo/internal/platform/errors"
)

type Interactor struct {
	buffer *service.Buffer
	store  eventsout.EventStore
}

func NewInteractor(buffer *service.Buffer, store eventsout.EventStore) eventsin.Usecase {
	return &Interactor{buffer: buffer, store: store}
}

func (i *Interactor) BySession(ctx context.Context, sessionID string) ([]dto.EventOutput, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	events, err := i.store.BySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return mapEvents(events), nil
}

func (i *Interactor) BySessionAndKind(ctx context.Context, sessionID, kind string) ([]dto.EventOutput, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	eventKind := domain.Kind(kind)
	if err := eventKind.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	events, err := i.store.BySessionAndKind(ctx, sessionID, eventKind)
	if err != nil {
		return nil, err
	}
	return mapEvents(events), nil
}

func (i *Interactor) ByRange(ctx context.Context, input dto.RangeInput) ([]dto.EventOutput, error) {
	if !input.From.Before(input.To) {
		return nil, fmt.Errorf("%w: range start must precede end", apperrors.ErrInvalidInput)
	}
	events, err := i.store.ByRange(ctx, input.From, input.To)
	if err != nil {
		return nil, err
	}
	return mapEvents(events), nil
}

func (i *Interactor) Flush(ctx context.Context) (dto.FlushOutput, error) {
	pending := i.buffer.Len()
	if err := i.buffer.Flush(ctx); err != nil {
		return dto.FlushOutput{}, fmt.Errorf("%w: %v", apperrors.ErrFlushFailed, err)
	}
	return dto.FlushOutput{Flushed: pending}, nil
}

func mapEvents(events []domain.Event) []dto.EventOutput {
	out := make([]dto.EventOutput, 0, len(events))
	for _, event := range events {
		out = append(out, dto.EventOutput{
			ID:             event.ID,
			SessionID:      event.SessionID,
			Kind:           string(event.Kind),
			ElapsedSeconds: event.ElapsedSeconds,
			Timestamp:      event.Timestamp,
			Metadata:       event.Metadata,
		})
	}
	return out
}
