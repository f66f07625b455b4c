package preview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/markedit/internal/markdown"
	"github.com/Paintersrp/markedit/internal/scroll"
)

const gutterWidth = 2

type ElementKind int

const (
	ElementTask ElementKind = iota
	ElementLink
)

// Element is a focusable piece of the preview: an interactive checkbox or a
// same-document link.
type Element struct {
	Kind ElementKind
	Unit int
	Task markdown.Task
	Link markdown.Link
}

func (e Element) Label() string {
	switch e.Kind {
	case ElementTask:
		mark := "[ ]"
		if e.Task.Checked {
			mark = "[x]"
		}
		return mark + " " + e.Task.ID.String()
	default:
		return e.Link.Text + " → #" + e.Link.Target
	}
}

var (
	focusGutter = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	plainGutter = lipgloss.NewStyle()
)

// Container is the rendered preview: the concatenated unit output inside a
// viewport, plus the line offset of every unit.
type Container struct {
	vp       viewport.Model
	doc      *markdown.Document
	parts    []string
	offsets  []int
	elements []Element
	focus    int
}

func NewContainer(width, height int) *Container {
	return &Container{vp: viewport.New(width, height), focus: -1}
}

// ScrollTop and friends make the container a scroll.Region.
func (c *Container) ScrollTop() int       { return c.region().ScrollTop() }
func (c *Container) ScrollHeight() int    { return c.region().ScrollHeight() }
func (c *Container) ClientHeight() int    { return c.region().ClientHeight() }
func (c *Container) SetScrollTop(top int) { c.region().SetScrollTop(top) }

func (c *Container) region() scroll.Viewport {
	return scroll.Viewport{Model: &c.vp}
}

// Offset returns the first content line of the first unit carrying id.
func (c *Container) Offset(id string) (int, bool) {
	idx, ok := c.doc.Lookup(id)
	if !ok || idx >= len(c.offsets) {
		return 0, false
	}
	return c.offsets[idx], true
}

func (c *Container) SetSize(width, height int) {
	c.vp.Width = width
	c.vp.Height = height
}

// ContentWidth is the width available to rendered units.
func (c *Container) ContentWidth() int {
	if w := c.vp.Width - gutterWidth; w > 0 {
		return w
	}
	return 1
}

// Layout replaces the content with parts, one per unit of doc. Empty parts
// take no lines. Focus is kept on the same element index when possible.
func (c *Container) Layout(doc *markdown.Document, parts []string) {
	c.doc = doc
	c.parts = parts
	c.elements = collectElements(doc)
	if c.focus >= len(c.elements) {
		c.focus = len(c.elements) - 1
	}
	c.redraw()
}

func (c *Container) redraw() {
	c.offsets = make([]int, len(c.parts))

	focusUnit := -1
	if el, ok := c.Focused(); ok {
		focusUnit = el.Unit
	}

	var b strings.Builder
	line, wrote := 0, false
	for i, part := range c.parts {
		c.offsets[i] = line
		if part == "" {
			continue
		}
		if wrote {
			b.WriteString("\n\n")
			line += 2
			c.offsets[i] = line
		}
		wrote = true

		gutter := plainGutter.Render(strings.Repeat(" ", gutterWidth))
		if i == focusUnit {
			gutter = focusGutter.Render("▌ ")
		}
		lines := strings.Split(part, "\n")
		for j, l := range lines {
			if j > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(gutter)
			b.WriteString(l)
		}
		line += len(lines) - 1
	}

	c.vp.SetContent(b.String())
}

func collectElements(doc *markdown.Document) []Element {
	if doc == nil {
		return nil
	}
	var out []Element
	for i, u := range doc.Units {
		for _, task := range u.Tasks {
			if task.Interactive {
				out = append(out, Element{Kind: ElementTask, Unit: i, Task: task})
			}
		}
		for _, link := range u.Links {
			out = append(out, Element{Kind: ElementLink, Unit: i, Link: link})
		}
	}
	return out
}

func (c *Container) Elements() []Element {
	return c.elements
}

func (c *Container) Focused() (Element, bool) {
	if c.focus < 0 || c.focus >= len(c.elements) {
		return Element{}, false
	}
	return c.elements[c.focus], true
}

// FocusNext moves focus by delta, wrapping around, and scrolls the focused
// unit into view.
func (c *Container) FocusNext(delta int) (Element, bool) {
	n := len(c.elements)
	if n == 0 {
		c.focus = -1
		return Element{}, false
	}

	if c.focus < 0 {
		if delta < 0 {
			c.focus = n - 1
		} else {
			c.focus = 0
		}
	} else {
		c.focus = ((c.focus+delta)%n + n) % n
	}

	el := c.elements[c.focus]
	c.redraw()
	c.reveal(el.Unit)
	return el, true
}

func (c *Container) Blur() {
	if c.focus < 0 {
		return
	}
	c.focus = -1
	c.redraw()
}

func (c *Container) reveal(unit int) {
	if unit >= len(c.offsets) {
		return
	}
	off := c.offsets[unit]
	if off < c.vp.YOffset || off >= c.vp.YOffset+c.vp.Height {
		c.vp.SetYOffset(off)
	}
}

func (c *Container) Content() string {
	var b strings.Builder
	first := true
	for _, part := range c.parts {
		if part == "" {
			continue
		}
		if !first {
			b.WriteString("\n\n")
		}
		first = false
		b.WriteString(part)
	}
	return b.String()
}

// Update forwards scrolling input to the viewport.
func (c *Container) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.vp, cmd = c.vp.Update(msg)
	return cmd
}

func (c *Container) View() string {
	return c.vp.View()
}
