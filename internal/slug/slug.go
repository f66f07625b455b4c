// Package slug derives the anchor identifiers shared by the outline sidebar
// and the preview renderer.
package slug

import (
	"strings"
	"unicode"
)

// Slugify lowercases and trims text, drops everything that is not a letter
// (any script), digit, space, underscore or hyphen, and joins the remaining
// words with single hyphens. The result never starts or ends with a hyphen.
func Slugify(text string) string {
	lowered := strings.TrimSpace(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(lowered))

	separate := false
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsMark(r):
			if separate && b.Len() > 0 {
				b.WriteByte('-')
			}
			separate = false
			b.WriteRune(r)
		case r == '-', r == '_', unicode.IsSpace(r):
			separate = true
		}
	}

	return b.String()
}
