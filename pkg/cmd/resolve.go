package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/Paintersrp/markedit/internal/exporter"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
	"github.com/Paintersrp/markedit/internal/tui/editor"
)

// Source is a document loaded either from the store or from a file.
type Source struct {
	Doc  store.Document
	Path string
}

// ResolveDocument finds a stored document by id or unique id prefix.
func ResolveDocument(ctx context.Context, s *state.State, arg string) (store.Document, error) {
	if s == nil || s.Store == nil {
		return store.Document{}, errors.New("document store is not initialized")
	}
	if arg == "" {
		return store.Document{}, errors.New("a document id is required")
	}

	docs, err := s.Store.GetAll(ctx)
	if err != nil {
		return store.Document{}, err
	}
	doc, err := store.FindByPrefix(docs, arg)
	if err != nil {
		return store.Document{}, fmt.Errorf("%q: %w", arg, err)
	}
	return doc, nil
}

// ResolveSource treats arg as a file path when such a file exists and as a
// document id otherwise.
func ResolveSource(ctx context.Context, s *state.State, arg string) (Source, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		title, content, err := exporter.ReadFile(arg)
		if err != nil {
			return Source{}, err
		}
		return Source{Doc: store.Document{Title: title, Content: content}, Path: arg}, nil
	}

	doc, err := ResolveDocument(ctx, s, arg)
	if err != nil {
		return Source{}, err
	}
	return Source{Doc: doc}, nil
}

// EditorOptions fills the editor options shared by every command from the
// loaded state.
func EditorOptions(s *state.State, src Source) editor.Options {
	cfg := s.Config
	return editor.Options{
		Title:           src.Doc.Title,
		DocID:           src.Doc.ID,
		Path:            src.Path,
		Content:         src.Doc.Content,
		Theme:           cfg.Theme,
		Language:        cfg.Language,
		Wrap:            cfg.Wrap,
		SplitBreakpoint: cfg.SplitBreakpoint,
		Store:           s.Store,
		Rephraser:       s.Rephraser,
		Watcher:         s.Watcher,
		Pipeline:        s.Pipeline,
		Renderer:        s.Renderer,
		ParseOptions:    s.ParseOptions(),
	}
}

// RunEditor runs the editor until the user quits.
func RunEditor(opts editor.Options) error {
	m := editor.New(opts)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}
	if m.Dirty() {
		fmt.Fprintln(os.Stderr, "warning: quit with unsaved changes")
	}
	return nil
}

// Interactive reports whether stdin is a terminal.
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
