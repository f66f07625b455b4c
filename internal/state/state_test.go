package state

import (
	"path/filepath"
	"testing"

	"github.com/Paintersrp/markedit/internal/config"
	"github.com/Paintersrp/markedit/internal/store"
	"github.com/Paintersrp/markedit/internal/tasks"
)

func TestBuildSharesDiagramConfig(t *testing.T) {
	home := t.TempDir()
	cfg := config.Default(home)
	cfg.Preview.TaskPositions = true
	cfg.AI.APIKeyEnv = "MARKEDIT_TEST_UNSET_KEY"

	st, err := store.NewSQLiteStore(filepath.Join(home, "docs.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}

	s := build(home, cfg, st)
	if s.Pipeline.Config() != s.Diagrams {
		t.Fatalf("pipeline should use the shared diagram config")
	}
	if s.Rephraser != nil {
		t.Fatalf("rephraser needs an API key")
	}

	opts := s.ParseOptions()
	if opts.TaskScheme != tasks.ByLine || opts.Diagrams != s.Diagrams {
		t.Fatalf("unexpected parse options %#v", opts)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.Pipeline.NewToken().Active() {
		t.Fatalf("tokens issued after Close must be inactive")
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestBuildWithAPIKey(t *testing.T) {
	home := t.TempDir()
	cfg := config.Default(home)
	cfg.AI.APIKeyEnv = "MARKEDIT_TEST_KEY"
	t.Setenv("MARKEDIT_TEST_KEY", "sk-test")

	s := build(home, cfg, nil)
	defer s.Close()
	if s.Rephraser == nil {
		t.Fatalf("expected a rephraser when the key is set")
	}
}
