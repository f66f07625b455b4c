// Package toc builds the document outline shown in the sidebar.
//
// The outline is a plain line scan over the source text. Heading-looking lines
// inside fenced code blocks are reported too; the raw text is the ground truth
// for the outline, not the parsed document.
package toc

import (
	"regexp"
	"strings"

	"github.com/Paintersrp/markedit/internal/slug"
)

var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

type Entry struct {
	ID    string
	Text  string
	Level int
}

// ParseLine reports whether line is an ATX heading and returns its entry.
func ParseLine(line string) (Entry, bool) {
	match := headingPattern.FindStringSubmatch(line)
	if match == nil {
		return Entry{}, false
	}

	text := strings.TrimSpace(match[2])
	return Entry{
		ID:    slug.Slugify(text),
		Text:  text,
		Level: len(match[1]),
	}, true
}

// Extract returns every heading of source in document order.
func Extract(source string) []Entry {
	entries := []Entry{}
	for _, line := range strings.Split(source, "\n") {
		if entry, ok := ParseLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Indent returns the sidebar indentation depth for an entry level.
func Indent(level int) int {
	switch {
	case level <= 1:
		return 0
	case level == 2:
		return 1
	default:
		return 2
	}
}
