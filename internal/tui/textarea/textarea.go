// Package textarea wraps the bubbles text area used as the source pane and
// tracks which source lines are on screen.
package textarea

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/markedit/internal/scroll"
)

type Model struct {
	area    textarea.Model
	tracker scroll.Tracker
}

func New(width, height int) *Model {
	ta := textarea.New()
	ta.Placeholder = "..."
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.Prompt = ""

	m := &Model{area: ta}
	m.SetSize(width, height)
	return m
}

func (m *Model) SetSize(width, height int) {
	m.area.SetWidth(width)
	m.area.SetHeight(height)
	m.follow()
}

func (m *Model) Value() string {
	return m.area.Value()
}

// SetValue replaces the whole buffer. The cursor moves to the end.
func (m *Model) SetValue(content string) {
	m.area.SetValue(content)
	m.follow()
}

// Yank inserts the clipboard content at the cursor.
func (m *Model) Yank() error {
	content, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read clipboard: %w", err)
	}
	m.area.InsertString(content)
	m.follow()
	return nil
}

func (m *Model) Focus() tea.Cmd {
	return m.area.Focus()
}

func (m *Model) Blur() {
	m.area.Blur()
}

func (m *Model) Focused() bool {
	return m.area.Focused()
}

// Line is the 0-based row of the cursor.
func (m *Model) Line() int {
	return m.area.Line()
}

func (m *Model) LineCount() int {
	return m.area.LineCount()
}

// Update forwards msg to the text area and reports whether the buffer
// changed.
func (m *Model) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := m.area.Value()

	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	m.follow()

	return m.area.Value() != before, cmd
}

func (m *Model) View() string {
	return m.area.View()
}

func (m *Model) follow() {
	m.tracker.Follow(m.area.Line(), m.area.LineCount(), m.area.Height())
}

// Region exposes the visible window of the source for scroll coupling.
func (m *Model) Region() scroll.Region {
	return &m.tracker
}

func Blink() tea.Msg {
	return textarea.Blink()
}
