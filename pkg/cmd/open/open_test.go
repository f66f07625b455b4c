package open

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReadsFileVerbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	content := "# Notes\r\n\r\n- [ ] keep CRLF\r\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, err := load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if src.Doc.Content != content || src.Path != path {
		t.Fatalf("unexpected source %#v", src)
	}
	if src.Doc.Title != "Notes" {
		t.Fatalf("unexpected title %q", src.Doc.Title)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := load(filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
