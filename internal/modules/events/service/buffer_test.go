package service

import (
	"context"
	"errors"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	"tempo/internal/modules/events/domain"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.now = f.now.Add(time.Second)
	return f.now
}

type fakeStore struct {
	batches   [][]domain.Event
	insertErr error
}

func (f *fakeStore) InsertBatch(_ context.Context, events []domain.Event) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	batch := make([]domain.Event, len(events))
	copy(batch, events)
	f.batches = append(f.batches, batch)
	return nil
}

func (f *fakeStore) BySession(context.Context, string) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeStore) BySessionAndKind(context.Context, string, domain.Kind) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeStore) ByRange(context.Context, time.Time, time.Time) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeStore) HeatmapCells(context.Context, time.Time, []domain.Kind) ([]domain.HeatmapCell, error) {
	return nil, nil
}

func (f *fakeStore) DeleteBySession(context.Context, string) error {
	return nil
}

func (f *fakeStore) DeleteByRange(context.Context, time.Time, time.Time) error {
	return nil
}

func (f *fakeStore) total() int {
	n := 0
	for _, batch := range f.batches {
		n += len(batch)
	}
	return n
}

func newBuffer(store *fakeStore, threshold int) *Buffer {
	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)}
	return NewBuffer(store, clk, threshold, hclog.NewNullLogger())
}

func TestBufferAutoFlushAtThreshold(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &fakeStore{}
	buffer := newBuffer(store, 50)

	for i := 0; i < 51; i++ {
		buffer.Record(ctx, "s1", domain.KindMilestoneReached, i, nil)
	}

	if len(store.batches) != 1 {
		t.Fatalf("auto-flushes = %d, want exactly 1", len(store.batches))
	}
	if len(store.batches[0]) != 50 {
		t.Fatalf("flushed batch size = %d, want 50", len(store.batches[0]))
	}
	if buffer.Len() != 1 {
		t.Fatalf("buffered after auto-flush = %d, want 1", buffer.Len())
	}
}

func TestBufferFlushEmptyIsNoOp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &fakeStore{}
	buffer := newBuffer(store, 50)

	if err := buffer.Flush(ctx); err != nil {
		t.Fatalf("flush of empty buffer: %v", err)
	}
	if err := buffer.Flush(ctx); err != nil {
		t.Fatalf("repeated flush of empty buffer: %v", err)
	}
	if len(store.batches) != 0 {
		t.Fatalf("store writes = %d, want 0", len(store.batches))
	}
}

func TestBufferFailedFlushRetainsEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &fakeStore{insertErr: errors.New("database locked")}
	buffer := newBuffer(store, 50)

	for i := 0; i < 3; i++ {
		buffer.Record(ctx, "s1", domain.KindSessionResumed, i, nil)
	}
	if err := buffer.Flush(ctx); err == nil {
		t.Fatal("flush should propagate the insert failure")
	}
	if buffer.Len() != 3 {
		t.Fatalf("buffered after failed flush = %d, want 3", buffer.Len())
	}

	store.insertErr = nil
	if err := buffer.Flush(ctx); err != nil {
		t.Fatalf("retry flush: %v", err)
	}
	if buffer.Len() != 0 {
		t.Fatalf("buffered after retry = %d, want 0", buffer.Len())
	}
	if store.total() != 3 {
		t.Fatalf("persisted = %d, want all 3", store.total())
	}
}

func TestBufferFailedAutoFlushKeepsAccepting(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &fakeStore{insertErr: errors.New("database locked")}
	buffer := newBuffer(store, 5)

	for i := 0; i < 8; i++ {
		buffer.Record(ctx, "s1", domain.KindFocusShiftDetected, i, nil)
	}
	if buffer.Len() != 8 {
		t.Fatalf("buffered = %d, want 8 (nothing dropped)", buffer.Len())
	}

	store.insertErr = nil
	if err := buffer.Flush(ctx); err != nil {
		t.Fatalf("recovery flush: %v", err)
	}
	if store.total() != 8 {
		t.Fatalf("persisted = %d, want 8", store.total())
	}
}

func TestBufferStampsClockTimestamps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := &fakeStore{}
	buffer := newBuffer(store, 50)

	buffer.Record(ctx, "s1", domain.KindSessionStarted, 0, nil)
	buffer.Record(ctx, "s1", domain.KindMilestoneReached, 10, nil)
	if err := buffer.Flush(ctx); err != nil {
		t.Fatalf("flush: %v", err)
	}

	batch := store.batches[0]
	if !batch[1].Timestamp.After(batch[0].Timestamp) {
		t.Fatalf("timestamps should advance: %v then %v", batch[0].Timestamp, batch[1].Timestamp)
	}
}
