package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestManifestStoreMissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	store := NewFileManifestStore(filepath.Join(t.TempDir(), "monitors.json"))
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 0 {
		t.Fatalf("manifests = %d, want 0", len(manifests))
	}
}

func TestManifestStoreResolvesRelativeBinaries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "monitors.json")
	data := `[{"name":"window","binary":"bin/window-monitor","enabled":true,"poll_seconds":1}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	store := NewFileManifestStore(path)
	manifests, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(manifests) != 1 {
		t.Fatalf("manifests = %d, want 1", len(manifests))
	}
	want := filepath.Join(dir, "bin", "window-monitor")
	if manifests[0].Binary != want {
		t.Fatalf("binary = %s, want %s", manifests[0].Binary, want)
	}
}

func TestManifestStoreRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "monitors.json")
	data := `[{"name":"window","binary":"b","enabled":true,"bogus":1}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := NewFileManifestStore(path).Load(context.Background()); err == nil {
		t.Fatal("unknown fields must be rejected")
	}
}

func TestManifestStoreRejectsInvalidManifest(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "monitors.json")
	data := `[{"name":"","binary":"b","enabled":true}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := NewFileManifestStore(path).Load(context.Background()); err == nil {
		t.Fatal("nameless manifest must be rejected")
	}
}
