package service

import (
	"context"
	"sync"

	hclog "github.com/hashicorp/go-hclog"

	"tempo/internal/modules/events/domain"
	eventsout "tempo/internal/modules/events/port/out"
	"tempo/internal/platform/clock"
)

// Buffer decouples event production from persistence. Record always succeeds;
// events become queryable only after a successful Flush. A failed flush leaves
// the buffer intact so nothing is lost while the process lives.
type Buffer struct {
	mu        sync.Mutex
	pending   []domain.Event
	store     eventsout.EventStore
	clock     clock.Clock
	threshold int
	logger    hclog.Logger
}

func NewBuffer(store eventsout.EventStore, clk clock.Clock, threshold int, logger hclog.Logger) *Buffer {
	if threshold <= 0 {
		threshold = 50
	}
	return &Buffer{
		pending:   make([]domain.Event, 0, threshold),
		store:     store,
		clock:     clk,
		threshold: threshold,
		logger:    logger,
	}
}

// Record appends an event with the current timestamp. Reaching the threshold
// triggers a synchronous flush before Record returns; a failed auto-flush is
// logged and deferred to the next flush point.
func (b *Buffer) Record(ctx context.Context, sessionID string, kind domain.Kind, elapsedSeconds int, metadata map[string]any) {
	b.mu.Lock()
	b.pending = append(b.pending, domain.Event{
		SessionID:      sessionID,
		Kind:           kind,
		ElapsedSeconds: elapsedSeconds,
		Timestamp:      b.clock.Now(),
		Metadata:       metadata,
	})
	full := len(b.pending) >= b.threshold
	b.mu.Unlock()

	if full {
		if err := b.Flush(ctx); err != nil {
			b.logger.Error("auto-flush failed, events retained", "error", err)
		}
	}
}

// Flush batch-inserts all buffered events in one transaction. An empty buffer
// flushes successfully without touching the store.
func (b *Buffer) Flush(ctx context.Context) error {
	b.mu.Lock()
	if len(b.pending) == 0 {
		b.mu.Unlock()
		return nil
	}
	batch := b.pending
	b.mu.Unlock()

	if err := b.store.InsertBatch(ctx, batch); err != nil {
		return err
	}

	// Events recorded while the insert ran stay queued for the next flush.
	b.mu.Lock()
	b.pending = b.pending[len(batch):]
	b.mu.Unlock()
	return nil
}

// Len reports the number of buffered, not-yet-persisted events.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
