package templater

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedTemplater(t *testing.T, dir string) *Templater {
	t.Helper()

	tmpl, err := NewTemplater(dir)
	if err != nil {
		t.Fatalf("NewTemplater returned error: %v", err)
	}
	tmpl.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return tmpl
}

func TestEmbeddedTemplates(t *testing.T) {
	t.Parallel()

	tmpl := fixedTemplater(t, "")
	want := []string{"diagram", "meeting", "note", "todo"}
	if got := strings.Join(tmpl.Names(), ","); got != strings.Join(want, ",") {
		t.Fatalf("unexpected template names %q", got)
	}

	out, err := tmpl.Execute("meeting", "Weekly sync")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !strings.HasPrefix(out, "# Weekly sync\n\n_2024-05-01_") {
		t.Fatalf("unexpected render %q", out)
	}
	if !strings.Contains(out, "- [ ]") {
		t.Fatalf("meeting template should carry a task list: %q", out)
	}
}

func TestUserTemplateTakesPrecedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "note.tmpl"), []byte("custom {{.Title}}"), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ignored.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tmpl := fixedTemplater(t, dir)
	if tmpl.templates["note"].FilePath != filepath.Join(dir, "note.tmpl") {
		t.Fatalf("expected user note template, got %#v", tmpl.templates["note"])
	}
	if _, ok := tmpl.templates["ignored"]; ok {
		t.Fatalf("non-template files should be skipped")
	}

	out, err := tmpl.Execute("note", "Mine")
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if out != "custom Mine" {
		t.Fatalf("unexpected render %q", out)
	}
}

func TestMissingUserDirIsIgnored(t *testing.T) {
	t.Parallel()

	tmpl := fixedTemplater(t, filepath.Join(t.TempDir(), "missing"))
	if len(tmpl.Names()) != 4 {
		t.Fatalf("expected embedded templates only, got %v", tmpl.Names())
	}
}

func TestExecuteUnknownTemplate(t *testing.T) {
	t.Parallel()

	tmpl := fixedTemplater(t, "")
	_, err := tmpl.Execute("nope", "x")
	if err == nil || !strings.Contains(err.Error(), "available: diagram") {
		t.Fatalf("expected not found error listing templates, got %v", err)
	}
}

func TestExecuteBrokenTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.tmpl"), []byte("{{.Title"), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	tmpl := fixedTemplater(t, dir)
	if _, err := tmpl.Execute("bad", "x"); err == nil {
		t.Fatalf("expected parse error")
	}
}
