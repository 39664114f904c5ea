package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadManifestReturnsDefaultOnDecodeError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	m, err := readManifest(path, 5, time.Now())
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if m.Retention.Weeks != 5 {
		t.Fatalf("expected retention fallback to provided, got %d", m.Retention.Weeks)
	}
	if m.Weeks.IDs == nil {
		t.Fatalf("expected empty id list, got nil")
	}
}

func TestWriteManifestFailsWhenPathMissing(t *testing.T) {
	if err := writeManifest(filepath.Join("does-not-exist", "missing"), defaultManifest(3, time.Now()), time.Now()); err == nil {
		t.Fatalf("expected error when base path missing")
	}
}

func TestManifestDefaultsWhenAbsent(t *testing.T) {
	w := NewWriter(t.TempDir(), 4)
	m, err := w.Manifest()
	if err != nil {
		t.Fatalf("expected default manifest, got %v", err)
	}
	if m.Version != 1 || m.Retention.Weeks != 4 || len(m.Weeks.IDs) != 0 {
		t.Fatalf("unexpected default manifest %+v", m)
	}
}
