// Package tasks maps checkbox interactions in the preview back onto the
// source text.
//
// Scan is the single canonical counting pass: the preview renderer numbers
// its checkboxes with it and Toggle walks the lines the same way, so ordinal
// identifiers cannot drift between the two.
package tasks

import (
	"fmt"
	"regexp"
	"strings"
)

var checkboxPattern = regexp.MustCompile(`^(\s*- \[)([ xX])(\].*)$`)

type Kind int

const (
	// ByLine identifies a checkbox by its 1-based source line.
	ByLine Kind = iota
	// ByOrdinal identifies a checkbox by its 0-based position among all
	// checkbox lines of the source.
	ByOrdinal
)

type Identifier struct {
	Kind Kind
	N    int
}

func Line(n int) Identifier    { return Identifier{Kind: ByLine, N: n} }
func Ordinal(n int) Identifier { return Identifier{Kind: ByOrdinal, N: n} }

func (id Identifier) String() string {
	if id.Kind == ByLine {
		return fmt.Sprintf("line %d", id.N)
	}
	return fmt.Sprintf("ordinal %d", id.N)
}

type Item struct {
	Line    int
	Ordinal int
	Checked bool
	Text    string
}

// Identifier returns the identifier of the item under the given scheme.
func (it Item) Identifier(kind Kind) Identifier {
	if kind == ByLine {
		return Line(it.Line)
	}
	return Ordinal(it.Ordinal)
}

// Scan lists every checkbox line of source in document order.
func Scan(source string) []Item {
	var items []Item
	for i, line := range strings.Split(source, "\n") {
		match := checkboxPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		items = append(items, Item{
			Line:    i + 1,
			Ordinal: len(items),
			Checked: match[2] != " ",
			Text:    strings.TrimSpace(strings.TrimPrefix(match[3], "]")),
		})
	}
	return items
}

// Toggle flips the checkbox addressed by id and returns the new source. When
// id does not address a checkbox line the source is returned unchanged.
func Toggle(source string, id Identifier) string {
	lines := strings.Split(source, "\n")

	count := 0
	for i, line := range lines {
		match := checkboxPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		hit := false
		switch id.Kind {
		case ByLine:
			hit = i+1 == id.N
		case ByOrdinal:
			hit = count == id.N
		}
		count++

		if !hit {
			continue
		}

		mark := "x"
		if match[2] != " " {
			mark = " "
		}
		lines[i] = match[1] + mark + match[3]
		return strings.Join(lines, "\n")
	}

	return source
}
