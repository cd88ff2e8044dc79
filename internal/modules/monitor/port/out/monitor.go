package out

import (
	"context"

	"tempo/internal/modules/monitor/domain"
)

// Host starts a monitor plugin process and speaks its rpc contract.
type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Sample(ctx context.Context, manifest domain.Manifest) (domain.Sample, error)
}

// ManifestStore loads the installed monitor manifests.
type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// SignalSink receives the environmental signals derived from samples. The
// session engine implements it; signals without a live session are dropped
// there, not here.
type SignalSink interface {
	FocusShift(ctx context.Context, monitor, app, windowTitle string) error
	DNDToggled(ctx context.Context, monitor string, active bool) error
}
