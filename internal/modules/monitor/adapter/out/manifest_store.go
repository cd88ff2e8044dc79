package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tempo/internal/modules/monitor/domain"
	monitorout "tempo/internal/modules/monitor/port/out"
)

// FileManifestStore reads monitor manifests from a JSON file. Relative binary
// paths resolve against the file's directory.
type FileManifestStore struct {
	path string
}

func NewFileManifestStore(path string) monitorout.ManifestStore {
	return &FileManifestStore{path: path}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Manifest{}, nil
		}
		return nil, fmt.Errorf("read monitor manifest store: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(b))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode monitor manifests: %w", err)
	}
	base := filepath.Dir(s.path)
	for i := range manifests {
		if err := manifests[i].Validate(); err != nil {
			return nil, fmt.Errorf("manifest %d: %w", i, err)
		}
		if !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Clean(filepath.Join(base, manifests[i].Binary))
		}
	}
	return manifests, nil
}
