// internal/denylist/denylist_test.go
package denylist

import (
	"os"
	"path/filepath"
	"testing"
)

const denyFile = `version: 1
metrics:
  - name: lisi
    reason: implementation under review
  - name: kbet
    disabled: true
    reason: fixed upstream
methods:
  - name: scanorama
    reason: failed runs in this batch
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denylist.yaml")
	if err := os.WriteFile(path, []byte(denyFile), 0o644); err != nil {
		t.Fatal(err)
	}

	metrics, methods, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if !metrics.Denies("lisi") {
		t.Fatal("expected lisi denied")
	}
	if metrics.Denies("kbet") {
		t.Fatal("disabled entry must not filter")
	}
	if !methods.Denies("scanorama") {
		t.Fatal("expected scanorama denied")
	}
	if methods.Denies("harmony") {
		t.Fatal("harmony should not be denied")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	metrics, methods, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !metrics.Empty() || !methods.Empty() {
		t.Fatal("empty path must yield no-op lists")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("configured but unreadable path must error")
	}

	bad := filepath.Join(t.TempDir(), "denylist.yaml")
	if err := os.WriteFile(bad, []byte("metrics: {not: [valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(bad); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewAndDenies(t *testing.T) {
	d := New("a", "b")
	if !d.Denies("a") || !d.Denies("b") || d.Denies("c") {
		t.Fatalf("unexpected membership: %v", d.Names())
	}
	if New().Denies("anything") {
		t.Fatal("zero list must deny nothing")
	}
}
