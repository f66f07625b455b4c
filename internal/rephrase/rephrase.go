// Package rephrase sends a selected fragment of the document to a language
// model and splices the answer back into the source.
package rephrase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	ErrEmptySelection = errors.New("no selection")
	ErrStale          = errors.New("document changed while rephrasing")
	ErrRange          = errors.New("selection out of range")
)

type Rephraser interface {
	Rephrase(ctx context.Context, text string) (string, error)
}

type RephraserFunc func(ctx context.Context, text string) (string, error)

func (f RephraserFunc) Rephrase(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Selection is a byte range of Snapshot, the source text at the time the
// request was made.
type Selection struct {
	Snapshot string
	Start    int
	End      int
}

func (s Selection) Text() string {
	return s.Snapshot[s.Start:s.End]
}

// ResultMsg reports a finished rephrase request to the update loop.
type ResultMsg struct {
	Selection Selection
	Text      string
	Err       error
}

// Select validates a byte range of source.
func Select(source string, start, end int) (Selection, error) {
	if err := checkRange(source, start, end); err != nil {
		return Selection{}, err
	}
	if strings.TrimSpace(source[start:end]) == "" {
		return Selection{}, ErrEmptySelection
	}
	return Selection{Snapshot: source, Start: start, End: end}, nil
}

// LineSpan returns the byte range covering the 0-based lines from..to
// inclusive, in either order. The range excludes the final newline.
func LineSpan(source string, from, to int) (int, int, error) {
	if from > to {
		from, to = to, from
	}
	lines := strings.Split(source, "\n")
	if from < 0 || to >= len(lines) {
		return 0, 0, fmt.Errorf("%w: lines %d-%d of %d", ErrRange, from, to, len(lines))
	}

	start := 0
	for i := 0; i < from; i++ {
		start += len(lines[i]) + 1
	}
	end := start
	for i := from; i <= to; i++ {
		end += len(lines[i])
		if i < to {
			end++
		}
	}
	return start, end, nil
}

// Splice replaces source[start:end] with replacement.
func Splice(source string, start, end int, replacement string) (string, error) {
	if err := checkRange(source, start, end); err != nil {
		return source, err
	}
	return source[:start] + replacement + source[end:], nil
}

// Apply splices text into current when current still equals the snapshot the
// selection was taken from.
func Apply(current string, sel Selection, text string) (string, error) {
	if current != sel.Snapshot {
		return current, ErrStale
	}
	return Splice(current, sel.Start, sel.End, text)
}

// Command runs r on the selection off the update loop.
func Command(ctx context.Context, r Rephraser, sel Selection) tea.Cmd {
	return func() tea.Msg {
		if r == nil {
			return ResultMsg{Selection: sel, Err: errors.New("rephrasing is not configured")}
		}
		text, err := r.Rephrase(ctx, sel.Text())
		if err != nil {
			return ResultMsg{Selection: sel, Err: fmt.Errorf("failed to rephrase: %w", err)}
		}
		return ResultMsg{Selection: sel, Text: text}
	}
}

func checkRange(source string, start, end int) error {
	if start < 0 || end > len(source) || start > end {
		return fmt.Errorf("%w: [%d, %d) of %d bytes", ErrRange, start, end, len(source))
	}
	if !boundary(source, start) || !boundary(source, end) {
		return fmt.Errorf("%w: offset splits a character", ErrRange)
	}
	return nil
}

func boundary(s string, i int) bool {
	return i == 0 || i == len(s) || utf8.RuneStart(s[i])
}
