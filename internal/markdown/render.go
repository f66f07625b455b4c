package markdown

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"

	"github.com/Paintersrp/markedit/internal/cache"
)

const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
	ThemePlain  = "plain"
)

var maxCacheSizeMB int64 = 8

// Style selects how units are drawn: a theme name and a wrap width.
type Style struct {
	Theme string
	Width int
}

type unitKey struct {
	style  Style
	kind   UnitKind
	source string
}

type Renderer struct {
	md        goldmark.Markdown
	terms     map[Style]*glamour.TermRenderer
	rendered  *cache.Cache[unitKey]
	darkProbe func() bool
}

func NewRenderer() *Renderer {
	c, err := cache.New[unitKey](maxCacheSizeMB)
	if err != nil {
		log.Printf("render cache disabled: %v", err)
	}
	return &Renderer{
		md:        newParser(),
		terms:     make(map[Style]*glamour.TermRenderer),
		rendered:  c,
		darkProbe: termenv.HasDarkBackground,
	}
}

// GlamourStyle maps a theme selector onto a glamour standard style.
func (r *Renderer) GlamourStyle(theme string) string {
	switch theme {
	case ThemeLight:
		return "light"
	case ThemeDark:
		return "dark"
	case ThemePlain:
		return "notty"
	default:
		if r.darkProbe != nil && !r.darkProbe() {
			return "light"
		}
		return "dark"
	}
}

// RenderUnit draws one unit for the terminal. Diagram units are drawn by the
// diagram pipeline and return an empty string here. A unit that glamour cannot
// render falls back to its raw source.
func (r *Renderer) RenderUnit(u Unit, style Style) string {
	if u.Kind == KindDiagram {
		return ""
	}

	source := u.Source
	if u.Kind == KindFootnote {
		source = footnoteSource(u)
	}

	key := unitKey{style: style, kind: u.Kind, source: source}
	if out, ok := r.rendered.Get(key); ok {
		return out
	}

	term, err := r.term(style)
	if err != nil {
		log.Printf("glamour renderer: %v", err)
		return u.Source
	}

	out, err := term.Render(source)
	if err != nil {
		log.Printf("render %s at line %d: %v", u.Kind, u.StartLine, err)
		return u.Source
	}

	out = strings.Trim(out, "\n")
	r.rendered.Put(key, out)
	return out
}

func (r *Renderer) term(style Style) (*glamour.TermRenderer, error) {
	if term, ok := r.terms[style]; ok {
		return term, nil
	}

	name := r.GlamourStyle(style.Theme)
	profile := termenv.ANSI256
	if name == "notty" {
		profile = termenv.Ascii
	}

	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(name),
		glamour.WithWordWrap(style.Width),
		glamour.WithColorProfile(profile),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s renderer: %w", name, err)
	}

	r.terms[style] = term
	return term, nil
}

// footnoteSource rewrites a footnote definition so glamour does not treat it
// as a link reference definition.
func footnoteSource(u Unit) string {
	body := u.Source
	if idx := strings.Index(body, "]:"); idx >= 0 {
		body = strings.TrimSpace(body[idx+2:])
	}
	return fmt.Sprintf("**%s** %s", FootnoteLabel(u.Footnote), body)
}
