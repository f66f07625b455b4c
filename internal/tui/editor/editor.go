// Package editor is the interactive editing surface: a source pane, a live
// preview pane and an outline sidebar.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/markedit/internal/anchor"
	"github.com/Paintersrp/markedit/internal/diagram"
	"github.com/Paintersrp/markedit/internal/markdown"
	"github.com/Paintersrp/markedit/internal/preview"
	"github.com/Paintersrp/markedit/internal/rephrase"
	"github.com/Paintersrp/markedit/internal/scroll"
	"github.com/Paintersrp/markedit/internal/state"
	"github.com/Paintersrp/markedit/internal/store"
	"github.com/Paintersrp/markedit/internal/tui/textarea"
)

const rephraseTimeout = 60 * time.Second

var errNoRephraser = errors.New("rephrasing is not configured: set an API key")

type Mode int

const (
	ModeSplit Mode = iota
	ModeEdit
	ModePreview
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModePreview:
		return "preview"
	default:
		return "split"
	}
}

// ParseMode maps a mode name onto a Mode; unknown names give ModeSplit.
func ParseMode(name string) Mode {
	switch strings.ToLower(name) {
	case "edit":
		return ModeEdit
	case "preview":
		return ModePreview
	default:
		return ModeSplit
	}
}

type pane int

const (
	paneSource pane = iota
	panePreview
	paneTOC
)

// Options describe the document being edited and the services around it. A
// document is backed by Path when set, otherwise by Store under DocID.
type Options struct {
	Title           string
	DocID           string
	Path            string
	Content         string
	Theme           string
	Language        string
	Mode            Mode
	Wrap            int
	SplitBreakpoint int
	Store           store.Store
	Rephraser       rephrase.Rephraser
	Watcher         *state.FileWatcher
	Pipeline        *diagram.Pipeline
	Renderer        *markdown.Renderer
	ParseOptions    markdown.Options
}

type savedMsg struct {
	content string
	err     error
}

type Model struct {
	opts    Options
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	source  *textarea.Model
	preview *preview.Orchestrator
	coupler *scroll.Coupler
	initial tea.Cmd

	mode     Mode
	focus    pane
	showTOC  bool
	tocIndex int
	width    int
	height   int

	saved      string
	mark       int
	rephrasing bool
	cancel     context.CancelFunc
	spinning   bool

	status string
	err    error
}

func New(opts Options) *Model {
	if opts.Renderer == nil {
		opts.Renderer = markdown.NewRenderer()
	}
	if opts.Pipeline == nil {
		opts.Pipeline = diagram.NewPipeline(diagram.DefaultConfig(), nil)
	}
	if opts.Theme == "" {
		opts.Theme = markdown.ThemeSystem
	}
	if opts.Title == "" {
		opts.Title = store.DefaultTitle
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = modeStyle

	m := &Model{
		opts:    opts,
		keys:    newKeyMap(),
		help:    help.New(),
		spinner: sp,
		source:  textarea.New(80, 20),
		preview: preview.New(opts.Renderer, opts.Pipeline, opts.ParseOptions),
		mode:    opts.Mode,
		saved:   opts.Content,
		mark:    -1,
		width:   80,
		height:  24,
	}
	m.coupler = scroll.NewCoupler(m.source.Region(), m.preview.Container())
	m.source.SetValue(opts.Content)
	m.focus = m.defaultFocus()
	m.applyFocus()
	m.layout()
	m.initial = m.refresh()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.initial,
		m.opts.Watcher.Start(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case diagram.ResultMsg:
		if m.preview.Apply(msg) {
			m.syncPreview()
		}
		return m, nil

	case preview.EditMsg:
		m.source.SetValue(msg.Source)
		return m, m.refresh()

	case anchor.FrameMsg:
		return m, m.preview.Animate(msg)

	case rephrase.ResultMsg:
		return m, m.finishRephrase(msg)

	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("failed to save: %w", msg.err))
			return m, nil
		}
		m.saved = msg.content
		m.setStatus("saved")
		return m, nil

	case state.FileChangedMsg:
		return m, tea.Batch(m.reload(msg), m.opts.Watcher.Start())

	case state.FileWatcherErrMsg:
		log.Printf("file watcher: %v", msg.Err)
		return m, m.opts.Watcher.Start()

	case spinner.TickMsg:
		if m.preview.State() != preview.Rendering {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.focus == paneSource {
		_, cmd := m.source.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		if m.cancel != nil {
			m.cancel()
		}
		m.preview.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.save):
		return m.save()
	case key.Matches(msg, m.keys.cycleMode):
		m.mode = (m.mode + 1) % 3
		m.focus = m.defaultFocus()
		m.applyFocus()
		m.layout()
		return nil
	case key.Matches(msg, m.keys.switchPane):
		m.focus = m.nextPane()
		m.applyFocus()
		m.layout()
		return nil
	case key.Matches(msg, m.keys.toggleTOC):
		m.showTOC = !m.showTOC
		if m.showTOC {
			m.focus = paneTOC
		} else if m.focus == paneTOC {
			m.focus = m.defaultFocus()
		}
		m.applyFocus()
		m.layout()
		return nil
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return nil
	case key.Matches(msg, m.keys.rephrase):
		return m.startRephrase()
	}

	switch m.focus {
	case paneTOC:
		return m.handleTOCKey(msg)
	case panePreview:
		return m.handlePreviewKey(msg)
	}
	return m.handleSourceKey(msg)
}

func (m *Model) handleSourceKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.mark):
		m.mark = m.source.Line()
		m.setStatus(fmt.Sprintf("mark set at line %d", m.mark+1))
		return nil
	case key.Matches(msg, m.keys.yank):
		if err := m.source.Yank(); err != nil {
			m.setError(err)
			return nil
		}
		cmd := m.refresh()
		m.syncPreview()
		return cmd
	}

	changed, cmd := m.source.Update(msg)
	if !changed {
		m.coupler.Scrolled()
		return cmd
	}
	refresh := m.refresh()
	m.syncPreview()
	return tea.Batch(cmd, refresh)
}

func (m *Model) handlePreviewKey(msg tea.KeyMsg) tea.Cmd {
	c := m.preview.Container()
	switch {
	case key.Matches(msg, m.keys.nextItem):
		c.FocusNext(1)
		return nil
	case key.Matches(msg, m.keys.prevItem):
		c.FocusNext(-1)
		return nil
	case key.Matches(msg, m.keys.activate):
		return m.preview.Activate()
	}
	return c.Update(msg)
}

func (m *Model) handleTOCKey(msg tea.KeyMsg) tea.Cmd {
	outline := m.preview.Outline()
	if len(outline) == 0 {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.up):
		if m.tocIndex > 0 {
			m.tocIndex--
		}
	case key.Matches(msg, m.keys.down):
		if m.tocIndex < len(outline)-1 {
			m.tocIndex++
		}
	case key.Matches(msg, m.keys.activate):
		return m.preview.Follow("#" + outline[m.tocIndex].ID)
	case key.Matches(msg, m.keys.copyLink):
		link := "#" + outline[m.tocIndex].ID
		if err := clipboard.WriteAll(link); err != nil {
			m.setError(fmt.Errorf("failed to copy link: %w", err))
			return nil
		}
		m.setStatus("copied " + link)
	}
	return nil
}

// refresh runs a derivation pass over the current buffer.
func (m *Model) refresh() tea.Cmd {
	cmd := m.preview.Update(m.source.Value(), m.opts.Theme)

	if n := len(m.preview.Outline()); m.tocIndex >= n {
		m.tocIndex = max(n-1, 0)
	}

	if m.preview.State() == preview.Rendering && !m.spinning {
		m.spinning = true
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

// syncPreview follows the source position while the source pane drives.
func (m *Model) syncPreview() {
	if m.focus == paneSource {
		m.coupler.Resync()
	}
}

func (m *Model) save() tea.Cmd {
	content := m.source.Value()

	if path := m.opts.Path; path != "" {
		return func() tea.Msg {
			return savedMsg{content: content, err: os.WriteFile(path, []byte(content), 0o644)}
		}
	}

	if m.opts.Store == nil {
		m.setError(errors.New("nowhere to save this document"))
		return nil
	}

	st := m.opts.Store
	doc := store.Document{ID: m.opts.DocID, Title: m.opts.Title, Content: content}
	return func() tea.Msg {
		return savedMsg{content: content, err: st.Save(context.Background(), &doc)}
	}
}

// reload picks up a change made to the backing file by another program.
// Unsaved edits are never overwritten.
func (m *Model) reload(msg state.FileChangedMsg) tea.Cmd {
	if msg.Removed {
		m.setStatus("file removed on disk")
		return nil
	}

	data, err := os.ReadFile(msg.Path)
	if err != nil {
		m.setError(fmt.Errorf("failed to reload: %w", err))
		return nil
	}

	content := string(data)
	current := m.source.Value()
	switch {
	case content == current:
		m.saved = content
		return nil
	case m.Dirty():
		m.setStatus("file changed on disk; keeping unsaved edits")
		return nil
	}

	m.source.SetValue(content)
	m.saved = content
	m.setStatus("reloaded from disk")
	return m.refresh()
}

func (m *Model) startRephrase() tea.Cmd {
	if m.opts.Rephraser == nil {
		m.setError(errNoRephraser)
		return nil
	}
	if m.rephrasing {
		m.setStatus("rephrase already running")
		return nil
	}

	value := m.source.Value()
	from := m.source.Line()
	to := from
	if m.mark >= 0 {
		from = m.mark
	}

	start, end, err := rephrase.LineSpan(value, from, to)
	if err != nil {
		m.setError(err)
		return nil
	}
	sel, err := rephrase.Select(value, start, end)
	if err != nil {
		m.setError(err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), rephraseTimeout)
	m.cancel = cancel
	m.rephrasing = true
	m.mark = -1
	m.setStatus("rephrasing…")
	return rephrase.Command(ctx, m.opts.Rephraser, sel)
}

func (m *Model) finishRephrase(msg rephrase.ResultMsg) tea.Cmd {
	m.rephrasing = false
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if msg.Err != nil {
		m.setError(msg.Err)
		return nil
	}

	next, err := rephrase.Apply(m.source.Value(), msg.Selection, msg.Text)
	if err != nil {
		m.setError(err)
		return nil
	}

	m.source.SetValue(next)
	m.setStatus("rephrased")
	cmd := m.refresh()
	m.syncPreview()
	return cmd
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = nil
}

func (m *Model) setError(err error) {
	log.Printf("editor: %v", err)
	m.status = ""
	m.err = err
}

// panes reports which of the two main panes are on screen. A split narrower
// than the breakpoint shows only the pane that has focus.
func (m *Model) panes() (source, prev bool) {
	switch m.mode {
	case ModeEdit:
		return true, false
	case ModePreview:
		return false, true
	}
	if m.width >= m.opts.SplitBreakpoint {
		return true, true
	}
	return m.focus != panePreview, m.focus == panePreview
}

func (m *Model) defaultFocus() pane {
	if m.mode == ModePreview {
		return panePreview
	}
	return paneSource
}

func (m *Model) nextPane() pane {
	order := []pane{}
	if m.showTOC {
		order = append(order, paneTOC)
	}
	if m.mode != ModePreview {
		order = append(order, paneSource)
	}
	if m.mode != ModeEdit {
		order = append(order, panePreview)
	}

	for i, p := range order {
		if p == m.focus {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

func (m *Model) applyFocus() {
	if m.focus == paneSource {
		m.source.Focus()
	} else {
		m.source.Blur()
	}
	if m.focus != panePreview {
		m.preview.Container().Blur()
	}
}

func (m *Model) layout() {
	m.help.Width = m.width
	bodyHeight := m.height - 1 - lipgloss.Height(m.help.View(m.keys))
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	width := m.width
	if m.showTOC {
		width -= tocWidth + 1
	}
	const border = 2

	showSource, showPreview := m.panes()
	m.coupler.SetEnabled(showSource && showPreview)

	sourceWidth, previewWidth := width, width-border
	if showSource && showPreview {
		sourceWidth = width / 2
		previewWidth = width - sourceWidth - border
	}
	if m.opts.Wrap > 0 && m.opts.Wrap+border < previewWidth {
		previewWidth = m.opts.Wrap + border
	}

	m.source.SetSize(max(sourceWidth, 1), bodyHeight)
	m.preview.SetSize(max(previewWidth, 1), bodyHeight)
	m.coupler.Resync()
}

// Dirty reports whether the buffer differs from what was last saved.
func (m *Model) Dirty() bool {
	return m.source.Value() != m.saved
}

func (m *Model) Value() string {
	return m.source.Value()
}

func (m *Model) View() string {
	bodyHeight := m.preview.Container().ClientHeight()
	showSource, showPreview := m.panes()

	var panes []string
	if m.showTOC {
		selected := -1
		if m.focus == paneTOC {
			selected = m.tocIndex
		}
		panes = append(panes, renderTOC(m.preview.Outline(), selected, bodyHeight, m.opts.Language))
	}
	if showSource {
		panes = append(panes, m.source.View())
	}
	if showPreview {
		style := paneStyle
		if m.focus == panePreview {
			style = activePaneStyle
		}
		panes = append(panes, style.Height(bodyHeight).Render(m.preview.Container().View()))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusView(), m.help.View(m.keys))
}

func (m *Model) statusView() string {
	title := m.opts.Title
	if m.Dirty() {
		title += " *"
	}

	render := m.preview.State().String()
	if m.preview.State() == preview.Rendering {
		render = m.spinner.View() + " " + render
	}

	value := m.source.Value()
	counts := fmt.Sprintf("%d chars · %d words", utf8.RuneCountInString(value), len(strings.Fields(value)))

	parts := []string{
		titleStyle.Render(title),
		modeStyle.Render(m.mode.String()),
		render,
		countStyle.Render(counts),
	}
	switch {
	case m.err != nil:
		parts = append(parts, errorStyle.Render(m.err.Error()))
	case m.status != "":
		parts = append(parts, statusStyle.Render(m.status))
	}
	return strings.Join(parts, "  ")
}
