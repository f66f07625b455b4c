// Package markdown wraps goldmark and glamour. It splits a source text into
// independently rendered units and records the structure the preview needs:
// heading ids, checkbox positions, same-document links and diagram blocks.
package markdown

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Paintersrp/markedit/internal/diagram"
	"github.com/Paintersrp/markedit/internal/slug"
	"github.com/Paintersrp/markedit/internal/tasks"
	"github.com/Paintersrp/markedit/internal/toc"
)

var anchorPattern = regexp.MustCompile(`(?i)<a\s[^>]*?(?:id|name)\s*=\s*["']([^"']+)["']`)

type Options struct {
	// TaskScheme selects how interactive checkboxes are identified. ByLine
	// relies on parser position metadata, ByOrdinal on the canonical scan.
	TaskScheme tasks.Kind
	Diagrams   *diagram.Config
}

type parseState struct {
	src        []byte
	lines      []string
	lineStarts []int
	opts       Options
	scanned    map[int]tasks.Item
	footnotes  map[int]string
}

func newParser() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
		),
	)
}

// Parse splits source into units. It never fails; unknown constructs become
// KindOther units rendered by glamour.
func (r *Renderer) Parse(source string, opts Options) *Document {
	src := []byte(source)
	root := r.md.Parser().Parse(text.NewReader(src))

	st := &parseState{
		src:       src,
		lines:     strings.Split(source, "\n"),
		opts:      opts,
		scanned:   make(map[int]tasks.Item),
		footnotes: make(map[int]string),
	}
	st.lineStarts = lineStarts(source)
	for _, item := range tasks.Scan(source) {
		st.scanned[item.Line] = item
	}
	st.collectFootnotes(root)

	var nodes []ast.Node
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.(type) {
		case *ast.List:
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				nodes = append(nodes, item)
			}
		case *east.FootnoteList:
			for fn := n.FirstChild(); fn != nil; fn = fn.NextSibling() {
				nodes = append(nodes, fn)
			}
		default:
			nodes = append(nodes, n)
		}
	}

	type placed struct {
		node ast.Node
		line int
	}
	var located []placed
	for _, n := range nodes {
		offset := st.nodeStart(n)
		if offset < 0 {
			continue
		}
		located = append(located, placed{node: n, line: st.lineOf(offset)})
	}
	sort.SliceStable(located, func(i, j int) bool {
		return located[i].line < located[j].line
	})

	doc := &Document{Source: source}
	first := len(st.lines) + 1
	if len(located) > 0 {
		first = located[0].line
	}
	if lead := st.leading(first); lead != nil {
		doc.Units = append(doc.Units, *lead)
	}
	for i, p := range located {
		end := len(st.lines)
		if i+1 < len(located) {
			end = located[i+1].line - 1
		}
		if end < p.line {
			end = p.line
		}
		for end > p.line && strings.TrimSpace(st.lines[end-1]) == "" {
			end--
		}
		doc.Units = append(doc.Units, st.unit(p.node, p.line, end))
	}

	return doc
}

func (st *parseState) unit(n ast.Node, start, end int) Unit {
	u := Unit{
		Kind:      KindOther,
		Source:    strings.Join(st.lines[start-1:end], "\n"),
		StartLine: start,
		EndLine:   end,
	}

	switch node := n.(type) {
	case *ast.Heading:
		u.Kind = KindHeading
		u.Level = node.Level
		if entry, ok := toc.ParseLine(st.lines[start-1]); ok {
			u.ID = entry.ID
		} else {
			u.ID = slug.Slugify(st.text(node))
		}
	case *ast.Paragraph, *ast.TextBlock:
		u.Kind = KindParagraph
	case *ast.ListItem:
		u.Kind = KindListItem
	case *ast.FencedCodeBlock:
		u.Kind = KindCode
		lang := string(node.Language(st.src))
		if st.opts.Diagrams.IsDiagram(lang) {
			u.Kind = KindDiagram
			u.Diagram = &Diagram{Language: lang, Source: st.blockBody(node)}
		}
	case *ast.CodeBlock:
		u.Kind = KindCode
	case *ast.Blockquote:
		u.Kind = KindQuote
	case *east.Table:
		u.Kind = KindTable
	case *ast.HTMLBlock:
		u.Kind = KindHTML
	case *east.Footnote:
		u.Kind = KindFootnote
		ref := string(node.Ref)
		u.ID = UserContentPrefix + "fn-" + ref
		u.Footnote = ref
	}

	st.decorate(n, &u)
	return u
}

// leading covers the lines before the first positioned node. Thematic breaks
// and empty blocks carry no position, so a document opening with one would
// otherwise lose those lines.
func (st *parseState) leading(first int) *Unit {
	end := first - 1
	if end > len(st.lines) {
		end = len(st.lines)
	}
	for end > 0 && strings.TrimSpace(st.lines[end-1]) == "" {
		end--
	}
	if end == 0 {
		return nil
	}

	start := 1
	for strings.TrimSpace(st.lines[start-1]) == "" {
		start++
	}
	return &Unit{
		Kind:      KindOther,
		Source:    strings.Join(st.lines[start-1:end], "\n"),
		StartLine: start,
		EndLine:   end,
	}
}

// decorate records checkboxes, same-document links and raw anchors found
// anywhere under n.
func (st *parseState) decorate(n ast.Node, u *Unit) {
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := child.(type) {
		case *east.TaskCheckBox:
			offset := st.nodeStart(node.Parent())
			if offset < 0 {
				break
			}
			line := st.lineOf(offset)
			task := Task{Line: line, Checked: node.IsChecked}
			if item, ok := st.scanned[line]; ok {
				task.Interactive = true
				task.ID = item.Identifier(st.opts.TaskScheme)
			}
			u.Tasks = append(u.Tasks, task)
		case *ast.Link:
			dest := string(node.Destination)
			if strings.HasPrefix(dest, "#") && len(dest) > 1 {
				u.Links = append(u.Links, Link{Text: st.text(node), Target: dest[1:]})
			}
		case *east.FootnoteLink:
			if ref, ok := st.footnotes[node.Index]; ok {
				u.Links = append(u.Links, Link{Text: "[^" + ref + "]", Target: "fn-" + ref})
			}
		case *ast.RawHTML:
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				st.addAnchors(string(seg.Value(st.src)), u)
			}
		case *ast.HTMLBlock:
			for i := 0; i < node.Lines().Len(); i++ {
				seg := node.Lines().At(i)
				st.addAnchors(string(seg.Value(st.src)), u)
			}
		}
		return ast.WalkContinue, nil
	})
}

func (st *parseState) addAnchors(html string, u *Unit) {
	for _, match := range anchorPattern.FindAllStringSubmatch(html, -1) {
		u.Aliases = append(u.Aliases, UserContentPrefix+match[1])
	}
}

func (st *parseState) collectFootnotes(root ast.Node) {
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if fn, ok := n.(*east.Footnote); ok && entering {
			st.footnotes[fn.Index] = string(fn.Ref)
		}
		return ast.WalkContinue, nil
	})
}

// nodeStart returns the byte offset where n begins in the source, or -1 when
// the node carries no position.
func (st *parseState) nodeStart(n ast.Node) int {
	if n == nil {
		return -1
	}

	switch node := n.(type) {
	case *ast.FencedCodeBlock:
		if node.Info != nil {
			return node.Info.Segment.Start
		}
		if node.Lines().Len() > 0 {
			line := st.lineOf(node.Lines().At(0).Start)
			if line > 1 {
				return st.lineStarts[line-2]
			}
		}
		return -1
	case *ast.Text:
		return node.Segment.Start
	}

	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start
	}

	start := -1
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if offset := st.nodeStart(child); offset >= 0 && (start < 0 || offset < start) {
			start = offset
		}
	}
	return start
}

func (st *parseState) lineOf(offset int) int {
	return sort.Search(len(st.lineStarts), func(i int) bool {
		return st.lineStarts[i] > offset
	})
}

func (st *parseState) blockBody(n ast.Node) string {
	var b strings.Builder
	for i := 0; i < n.Lines().Len(); i++ {
		seg := n.Lines().At(i)
		b.Write(seg.Value(st.src))
	}
	return b.String()
}

func (st *parseState) text(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := child.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(st.src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		case *ast.CodeSpan:
			for c := node.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					b.Write(t.Segment.Value(st.src))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func lineStarts(source string) []int {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// FootnoteLabel is the bracketed marker shown in front of a footnote body.
func FootnoteLabel(ref string) string {
	if _, err := strconv.Atoi(ref); err == nil {
		return "[" + ref + "]"
	}
	return "[^" + ref + "]"
}
