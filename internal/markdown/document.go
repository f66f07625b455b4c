package markdown

import (
	"github.com/Paintersrp/markedit/internal/tasks"
)

type UnitKind int

const (
	KindParagraph UnitKind = iota
	KindHeading
	KindListItem
	KindCode
	KindDiagram
	KindQuote
	KindTable
	KindHTML
	KindFootnote
	KindOther
)

func (k UnitKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list-item"
	case KindCode:
		return "code"
	case KindDiagram:
		return "diagram"
	case KindQuote:
		return "quote"
	case KindTable:
		return "table"
	case KindHTML:
		return "html"
	case KindFootnote:
		return "footnote"
	default:
		return "other"
	}
}

// UserContentPrefix namespaces identifiers that come from the author (raw
// HTML anchors, footnote definitions) so they cannot collide with heading
// slugs.
const UserContentPrefix = "user-content-"

// Unit is one independently rendered piece of the preview.
type Unit struct {
	Kind      UnitKind
	Source    string
	StartLine int
	EndLine   int
	Level     int
	ID        string
	Aliases   []string
	Tasks     []Task
	Links     []Link
	Diagram   *Diagram
	Footnote  string
}

// Task is a checkbox found by the parser. Interactive tasks carry the
// identifier the toggle mapper understands.
type Task struct {
	Line        int
	Checked     bool
	Interactive bool
	ID          tasks.Identifier
}

// Link is a same-document link; Target is the fragment without '#'.
type Link struct {
	Text   string
	Target string
}

type Diagram struct {
	Language string
	Source   string
}

type Document struct {
	Source string
	Units  []Unit
}

// HasID reports whether the unit carries id as its own id or an alias.
func (u Unit) HasID(id string) bool {
	if id == "" {
		return false
	}
	if u.ID == id {
		return true
	}
	for _, alias := range u.Aliases {
		if alias == id {
			return true
		}
	}
	return false
}

// Lookup returns the index of the first unit carrying id.
func (d *Document) Lookup(id string) (int, bool) {
	if d == nil {
		return -1, false
	}
	for i, u := range d.Units {
		if u.HasID(id) {
			return i, true
		}
	}
	return -1, false
}

// DiagramUnits returns the indexes of diagram units in document order.
func (d *Document) DiagramUnits() []int {
	if d == nil {
		return nil
	}
	var out []int
	for i, u := range d.Units {
		if u.Kind == KindDiagram && u.Diagram != nil {
			out = append(out, i)
		}
	}
	return out
}
