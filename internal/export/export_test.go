package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteMarkdownFileUsesStaticName(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteMarkdownFile(dir, "# Post\n\nbody")
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(path) != FileName {
		t.Fatalf("unexpected file name %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "# Post\n\nbody" {
		t.Fatalf("content mismatch: %q", data)
	}
}

func TestWriteMarkdownFileOverwritesPreviousExport(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteMarkdownFile(dir, "first"); err != nil {
		t.Fatalf("first write: %v", err)
	}
	path, err := WriteMarkdownFile(dir, "second")
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "second" {
		t.Fatalf("overwrite failed: %q", data)
	}
}

func TestExportRejectsBlankPost(t *testing.T) {
	if _, err := WriteMarkdownFile(t.TempDir(), "  \n"); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
	if err := CopyToClipboard(""); !errors.Is(err, ErrNothingToExport) {
		t.Fatalf("expected ErrNothingToExport, got %v", err)
	}
}
