package textarea

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestUpdateReportsChanges(t *testing.T) {
	t.Parallel()

	m := New(40, 5)
	m.Focus()

	changed, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if !changed || m.Value() != "a" {
		t.Fatalf("expected typed rune, got %q (changed=%v)", m.Value(), changed)
	}

	changed, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if changed {
		t.Fatalf("cursor movement is not a change")
	}
}

func TestRegionFollowsCursor(t *testing.T) {
	t.Parallel()

	m := New(40, 5)
	m.SetValue(strings.Repeat("line\n", 29) + "last")

	r := m.Region()
	if r.ScrollHeight() != 30 || r.ClientHeight() != 5 {
		t.Fatalf("unexpected region %d/%d", r.ScrollHeight(), r.ClientHeight())
	}
	if r.ScrollTop() != 25 {
		t.Fatalf("cursor at the end should show the last window, got %d", r.ScrollTop())
	}
}

func TestLongDocumentIsNotTruncated(t *testing.T) {
	t.Parallel()

	m := New(40, 5)
	content := strings.Repeat("a longer source line\n", 300)
	m.SetValue(content)
	if m.Value() != content {
		t.Fatalf("buffer truncated to %d bytes", len(m.Value()))
	}
}
