// Package fzf picks a stored document with a fuzzy finder.
package fzf

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/markedit/internal/store"
)

var ErrNoDocuments = errors.New("no documents to choose from")

// FuzzyFinder lets the user choose one document, with a rendered preview of
// the highlighted one.
type FuzzyFinder struct {
	Header string
	docs   []store.Document
	find   func(docs []store.Document, opts ...fuzzyfinder.Option) (int, error)
}

func NewFuzzyFinder(docs []store.Document, header string) *FuzzyFinder {
	return &FuzzyFinder{Header: header, docs: docs, find: findDocument}
}

func findDocument(docs []store.Document, opts ...fuzzyfinder.Option) (int, error) {
	return fuzzyfinder.Find(docs, func(i int) string {
		return Label(docs[i])
	}, opts...)
}

// Label is the line shown for a document in the finder.
func Label(d store.Document) string {
	return fmt.Sprintf("%s  [%s]  %s", d.Title, shortID(d.ID), d.UpdatedAt.Format("2006-01-02 15:04"))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run returns the chosen document. Aborting the finder returns
// fuzzyfinder.ErrAbort.
func (f *FuzzyFinder) Run(query string) (store.Document, error) {
	if len(f.docs) == 0 {
		return store.Document{}, ErrNoDocuments
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := f.find(f.docs, options...)
	if err != nil {
		return store.Document{}, err
	}
	if idx < 0 || idx >= len(f.docs) {
		return store.Document{}, errors.New("no document selected")
	}
	return f.docs[idx], nil
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i < 0 || i >= len(f.docs) {
		return ""
	}

	width := w - 4
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return f.docs[i].Content
	}

	out, err := r.Render(f.docs[i].Content)
	if err != nil {
		return "Error rendering markdown"
	}
	return out
}

// IsAbort reports whether err means the user closed the finder.
func IsAbort(err error) bool {
	return errors.Is(err, fuzzyfinder.ErrAbort)
}
