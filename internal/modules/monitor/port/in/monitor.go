package in

import (
	"context"

	"tempo/internal/modules/monitor/dto"
)

type Usecase interface {
	// Poll samples every enabled monitor once and forwards derived signals
	// to the session engine.
	Poll(ctx context.Context) error
	List(ctx context.Context) ([]dto.MonitorOutput, error)
	Check(ctx context.Context, name string) error
}
