package edit

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/markedit/internal/config"
	"github.com/Paintersrp/markedit/internal/fzf"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
)

func newTestState(t *testing.T) *state.State {
	t.Helper()

	home := t.TempDir()
	st, err := store.NewSQLiteStore(filepath.Join(home, "docs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return &state.State{Config: config.Default(home), Store: st}
}

func TestPickByPrefix(t *testing.T) {
	s := newTestState(t)
	ctx := context.Background()

	doc, err := s.Store.Create(ctx, "Plan", "# Plan\n")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := pick(ctx, s, []string{doc.ID[:8]})
	if err != nil {
		t.Fatalf("pick: %v", err)
	}
	if got.ID != doc.ID {
		t.Fatalf("picked %s, want %s", got.ID, doc.ID)
	}

	if _, err := pick(ctx, s, []string{"zzzzzzzz"}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPickWithoutDocuments(t *testing.T) {
	s := newTestState(t)

	if _, err := pick(context.Background(), s, nil); !errors.Is(err, fzf.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestModeFlagDefault(t *testing.T) {
	cmd := NewCmdEdit(newTestState(t))
	if got, _ := cmd.Flags().GetString("mode"); got != "split" {
		t.Fatalf("unexpected default mode %q", got)
	}
}
