// Package preview drives one derivation pass per source change: outline,
// rendered units, diagram renders and the interactive wiring that feeds
// checkbox toggles back to the editing buffer.
package preview

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/Paintersrp/markedit/internal/anchor"
	"github.com/Paintersrp/markedit/internal/diagram"
	"github.com/Paintersrp/markedit/internal/markdown"
	"github.com/Paintersrp/markedit/internal/tasks"
	"github.com/Paintersrp/markedit/internal/toc"
)

type State int

const (
	Settled State = iota
	Rendering
)

func (s State) String() string {
	if s == Rendering {
		return "rendering"
	}
	return "settled"
}

// EditMsg hands a new source text back to the editing buffer.
type EditMsg struct {
	Source string
}

var pendingStyle = lipgloss.NewStyle().Faint(true).Italic(true)

// slot is the render state of one distinct diagram source.
type slot struct {
	token  *diagram.Token
	done   bool
	markup string
}

type Orchestrator struct {
	renderer  *markdown.Renderer
	pipeline  *diagram.Pipeline
	opts      markdown.Options
	container *Container
	anim      *anchor.Animator

	source  string
	theme   string
	doc     *markdown.Document
	outline []toc.Entry
	slots   map[string]*slot
	state   State
	// abandoned is set when Settle gave up on the pass; diagrams still
	// pending then render empty instead of as a placeholder.
	abandoned bool
}

func New(renderer *markdown.Renderer, pipeline *diagram.Pipeline, opts markdown.Options) *Orchestrator {
	if opts.Diagrams == nil {
		opts.Diagrams = pipeline.Config()
	}
	return &Orchestrator{
		renderer:  renderer,
		pipeline:  pipeline,
		opts:      opts,
		container: NewContainer(80, 24),
		anim:      anchor.NewAnimator(),
		theme:     markdown.ThemeSystem,
		outline:   []toc.Entry{},
		slots:     make(map[string]*slot),
	}
}

// Update runs a derivation pass for source. Diagrams whose source is
// byte-identical to a live slot keep their render; every other diagram gets a
// fresh token and slots no longer present are cancelled.
func (o *Orchestrator) Update(source, theme string) tea.Cmd {
	o.source = source
	o.theme = theme
	o.doc = o.renderer.Parse(source, o.opts)
	o.outline = toc.Extract(source)
	o.state = Rendering
	o.abandoned = false

	live := make(map[string]bool)
	var cmds []tea.Cmd
	for _, idx := range o.doc.DiagramUnits() {
		src := o.doc.Units[idx].Diagram.Source
		if live[src] {
			continue
		}
		live[src] = true

		if s, ok := o.slots[src]; ok && (s.done || s.token.Active()) {
			continue
		}
		token := o.pipeline.NewToken()
		o.slots[src] = &slot{token: token}
		cmds = append(cmds, o.pipeline.Render(token, src, src))
	}

	for src, s := range o.slots {
		if !live[src] {
			s.token.Cancel()
			delete(o.slots, src)
		}
	}

	o.refreshState()
	o.layout()
	return tea.Batch(cmds...)
}

// Apply commits a diagram result. Results whose token was cancelled or
// replaced are discarded and Apply reports false.
func (o *Orchestrator) Apply(msg diagram.ResultMsg) bool {
	s, ok := o.slots[msg.Key]
	if !ok || s.token != msg.Token || !msg.Token.Active() {
		return false
	}

	s.done = true
	s.markup = msg.Markup
	o.refreshState()
	o.layout()
	return true
}

func (o *Orchestrator) refreshState() {
	for _, s := range o.slots {
		if !s.done {
			o.state = Rendering
			return
		}
	}
	o.state = Settled
}

func (o *Orchestrator) layout() {
	if o.doc == nil {
		return
	}

	style := markdown.Style{Theme: o.theme, Width: o.container.ContentWidth()}
	parts := make([]string, len(o.doc.Units))
	for i, u := range o.doc.Units {
		if u.Kind != markdown.KindDiagram {
			parts[i] = o.renderer.RenderUnit(u, style)
			continue
		}

		s, ok := o.slots[u.Diagram.Source]
		switch {
		case !ok:
		case !s.done && o.abandoned:
		case !s.done:
			parts[i] = pendingStyle.Render("rendering " + u.Diagram.Language + " diagram…")
		default:
			parts[i] = s.markup
		}
	}
	o.container.Layout(o.doc, parts)
}

// Toggle flips the checkbox identified by id and returns the new source. The
// orchestrator's own source is left alone until the buffer hands it back.
func (o *Orchestrator) Toggle(id tasks.Identifier) (string, bool) {
	next := tasks.Toggle(o.source, id)
	return next, next != o.source
}

// Follow scrolls the preview to a same-document link target.
func (o *Orchestrator) Follow(href string) tea.Cmd {
	return anchor.Navigate(o.container, o.anim, href)
}

// Activate triggers the focused element: a checkbox produces an EditMsg, a
// link scrolls the preview.
func (o *Orchestrator) Activate() tea.Cmd {
	el, ok := o.container.Focused()
	if !ok {
		return nil
	}

	switch el.Kind {
	case ElementTask:
		next, changed := o.Toggle(el.Task.ID)
		if !changed {
			return nil
		}
		return func() tea.Msg { return EditMsg{Source: next} }
	default:
		return o.Follow("#" + el.Link.Target)
	}
}

// Animate advances a running anchor animation.
func (o *Orchestrator) Animate(msg anchor.FrameMsg) tea.Cmd {
	return o.anim.Update(msg)
}

// SetSize resizes the preview and re-lays out the current pass.
func (o *Orchestrator) SetSize(width, height int) {
	before := o.container.ContentWidth()
	o.container.SetSize(width, height)
	if o.container.ContentWidth() != before {
		o.layout()
	}
}

func (o *Orchestrator) State() State                 { return o.state }
func (o *Orchestrator) Source() string               { return o.source }
func (o *Orchestrator) Theme() string                { return o.theme }
func (o *Orchestrator) Outline() []toc.Entry         { return o.outline }
func (o *Orchestrator) Document() *markdown.Document { return o.doc }
func (o *Orchestrator) Container() *Container        { return o.container }

// Pending returns the number of diagram renders not yet committed.
func (o *Orchestrator) Pending() int {
	n := 0
	for _, s := range o.slots {
		if !s.done {
			n++
		}
	}
	return n
}

// Settle runs cmd, as returned by Update, outside a tea.Program and applies
// every diagram result it produces. When ctx ends first the results that
// already arrived are applied, diagrams still running are laid out empty and
// the context error is returned.
func (o *Orchestrator) Settle(ctx context.Context, cmd tea.Cmd) error {
	var (
		mu      sync.Mutex
		results []diagram.ResultMsg
		g       errgroup.Group
	)

	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		g.Go(func() error {
			switch msg := c().(type) {
			case tea.BatchMsg:
				for _, sub := range msg {
					run(sub)
				}
			case diagram.ResultMsg:
				mu.Lock()
				results = append(results, msg)
				mu.Unlock()
			}
			return nil
		})
	}
	run(cmd)

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case <-ctx.Done():
		mu.Lock()
		arrived := append([]diagram.ResultMsg(nil), results...)
		mu.Unlock()

		o.abandoned = true
		for _, msg := range arrived {
			o.Apply(msg)
		}
		o.layout()
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return err
		}
	}

	for _, msg := range results {
		o.Apply(msg)
	}
	return nil
}

// Close cancels every outstanding diagram render.
func (o *Orchestrator) Close() {
	for src, s := range o.slots {
		s.token.Cancel()
		delete(o.slots, src)
	}
	o.anim.Stop()
}
