package scroll

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// Viewport adapts a bubbles viewport to Region.
type Viewport struct {
	Model *viewport.Model
}

func (v Viewport) ScrollTop() int    { return v.Model.YOffset }
func (v Viewport) ScrollHeight() int { return v.Model.TotalLineCount() }
func (v Viewport) ClientHeight() int { return v.Model.Height }

func (v Viewport) SetScrollTop(top int) {
	v.Model.SetYOffset(top)
}

// Tracker follows the visible window of a text area that keeps its cursor on
// screen. The area does not expose its offset, so the window is derived from
// cursor movement the same way the area repositions itself.
type Tracker struct {
	top    int
	lines  int
	height int
}

// Follow updates the window for the current cursor row, line count and
// visible height.
func (t *Tracker) Follow(row, lines, height int) {
	t.lines = lines
	t.height = height
	if height <= 0 {
		t.top = 0
		return
	}

	switch {
	case row < t.top:
		t.top = row
	case row >= t.top+height:
		t.top = row - height + 1
	}

	if maxTop := lines - height; t.top > maxTop {
		t.top = maxTop
	}
	if t.top < 0 {
		t.top = 0
	}
}

func (t *Tracker) ScrollTop() int    { return t.top }
func (t *Tracker) ScrollHeight() int { return t.lines }
func (t *Tracker) ClientHeight() int { return t.height }

// SetScrollTop is a no-op: the text area owns its own position.
func (t *Tracker) SetScrollTop(int) {}
