package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/markedit/internal/config"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
)

func newTestState(t *testing.T) *state.State {
	t.Helper()

	home := t.TempDir()
	st, err := store.NewSQLiteStore(filepath.Join(home, "docs.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return &state.State{Config: config.Default(home), Store: st, Home: home}
}

func TestResolveDocument(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()

	doc, err := s.Store.Create(ctx, "Notes", "body")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := ResolveDocument(ctx, s, doc.ID[:8])
	if err != nil {
		t.Fatalf("ResolveDocument: %v", err)
	}
	if got.ID != doc.ID {
		t.Fatalf("resolved %q, want %q", got.ID, doc.ID)
	}

	if _, err := ResolveDocument(ctx, s, "zzzz"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := ResolveDocument(ctx, s, ""); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestResolveSourcePrefersFiles(t *testing.T) {
	s := newTestState(t)
	path := filepath.Join(t.TempDir(), "draft.md")
	if err := os.WriteFile(path, []byte("# Draft\n\ntext"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, err := ResolveSource(context.Background(), s, path)
	if err != nil {
		t.Fatalf("ResolveSource: %v", err)
	}
	if src.Path != path || src.Doc.Title != "Draft" || src.Doc.Content != "# Draft\n\ntext" {
		t.Fatalf("unexpected source %#v", src)
	}
}

func TestEditorOptionsFromState(t *testing.T) {
	s := newTestState(t)
	s.Config.Language = config.LanguageEN
	s.Config.Wrap = 72

	opts := EditorOptions(s, Source{Doc: store.Document{ID: "abc", Title: "T", Content: "x"}})
	if opts.DocID != "abc" || opts.Language != "en" || opts.Wrap != 72 || opts.Store == nil {
		t.Fatalf("unexpected options %#v", opts)
	}
}
