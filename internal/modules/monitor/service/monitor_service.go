package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"tempo/internal/modules/monitor/domain"
	monitorout "tempo/internal/modules/monitor/port/out"
	apperrors "tempo/internal/platform/errors"
)

// MonitorService polls installed monitor plugins and converts sample deltas
// into session signals. The first sample from a monitor establishes its
// baseline and emits nothing. A monitor that fails to sample is skipped for
// the round; plugins must never stall the tick loop.
type MonitorService struct {
	store  monitorout.ManifestStore
	host   monitorout.Host
	sink   monitorout.SignalSink
	logger hclog.Logger

	lastSamples map[string]domain.Sample
}

func NewMonitorService(store monitorout.ManifestStore, host monitorout.Host, sink monitorout.SignalSink, logger hclog.Logger) *MonitorService {
	return &MonitorService{
		store:       store,
		host:        host,
		sink:        sink,
		logger:      logger,
		lastSamples: make(map[string]domain.Sample),
	}
}

// Poll samples every enabled monitor once and forwards derived signals.
func (s *MonitorService) Poll(ctx context.Context) error {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading monitor manifests: %w", err)
	}
	for _, manifest := range manifests {
		if !manifest.Enabled {
			continue
		}
		sample, err := s.host.Sample(ctx, manifest)
		if err != nil {
			s.logger.Warn("monitor sample failed", "monitor", manifest.Name, "error", err)
			continue
		}
		s.dispatch(ctx, manifest.Name, sample)
	}
	return nil
}

func (s *MonitorService) dispatch(ctx context.Context, name string, sample domain.Sample) {
	prev, seen := s.lastSamples[name]
	s.lastSamples[name] = sample
	if !seen {
		return
	}
	focusShift, dndToggled := sample.Changed(prev)
	if focusShift {
		if err := s.sink.FocusShift(ctx, name, sample.App, sample.WindowTitle); err != nil {
			s.logger.Warn("focus shift signal rejected", "monitor", name, "error", err)
		}
	}
	if dndToggled {
		if err := s.sink.DNDToggled(ctx, name, sample.DNDActive); err != nil {
			s.logger.Warn("dnd signal rejected", "monitor", name, "error", err)
		}
	}
}

// List describes every installed monitor, querying live metadata where the
// plugin responds.
func (s *MonitorService) List(ctx context.Context) ([]Installed, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading monitor manifests: %w", err)
	}
	out := make([]Installed, 0, len(manifests))
	for _, manifest := range manifests {
		installed := Installed{Manifest: manifest}
		if metadata, err := s.host.GetMetadata(ctx, manifest); err != nil {
			installed.Error = err.Error()
		} else {
			installed.Metadata = metadata
		}
		out = append(out, installed)
	}
	return out, nil
}

// Check verifies a named monitor's binary digest, then that the plugin
// starts and answers metadata.
func (s *MonitorService) Check(ctx context.Context, name string) error {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading monitor manifests: %w", err)
	}
	for _, manifest := range manifests {
		if manifest.Name != name {
			continue
		}
		if manifest.SHA256 != "" {
			if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
				return err
			}
		}
		return s.host.CheckLifecycle(ctx, manifest)
	}
	return fmt.Errorf("%w: monitor %q", apperrors.ErrNotFound, name)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read monitor binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

// Installed pairs a manifest with the plugin's self-reported metadata.
type Installed struct {
	Manifest domain.Manifest
	Metadata domain.Metadata
	Error    string
}
