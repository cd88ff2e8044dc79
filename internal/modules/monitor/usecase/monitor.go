package usecase

import (
	"context"
	"fmt"

	"tempo/internal/modules/monitor/dto"
	monitorin "tempo/internal/modules/monitor/port/in"
	"tempo/internal/modules/monitor/service"
	apperrors "tempo/internal/platform/errors"
)

type Interactor struct {
	service *service.MonitorService
}

func NewInteractor(svc *service.MonitorService) monitorin.Usecase {
	return &Interactor{service: svc}
}

func (i *Interactor) Poll(ctx context.Context) error {
	return i.service.Poll(ctx)
}

func (i *Interactor) List(ctx context.Context) ([]dto.MonitorOutput, error) {
	installed, err := i.service.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MonitorOutput, 0, len(installed))
	for _, monitor := range installed {
		out = append(out, dto.MonitorOutput{
			Name:         monitor.Manifest.Name,
			Binary:       monitor.Manifest.Binary,
			Enabled:      monitor.Manifest.Enabled,
			PollSeconds:  monitor.Manifest.PollSeconds,
			Version:      monitor.Metadata.Version,
			Capabilities: monitor.Metadata.Capabilities,
			Error:        monitor.Error,
		})
	}
	return out, nil
}

func (i *Interactor) Check(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("%w: monitor name is required", apperrors.ErrInvalidInput)
	}
	return i.service.Check(ctx, name)
}
