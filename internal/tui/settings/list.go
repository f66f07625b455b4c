// Package settings is the interactive settings menu.
package settings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/erikgeiser/promptkit/selection"

	"github.com/Paintersrp/markedit/internal/config"
)

type ListItem struct {
	setting config.Setting
}

func (i ListItem) Title() string       { return i.setting.Key }
func (i ListItem) Description() string { return i.setting.Value }
func (i ListItem) FilterValue() string { return i.setting.Key }

type listKeyMap struct {
	edit   key.Binding
	cancel key.Binding
	quit   key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit item"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit input mode"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

type ListModel struct {
	list   list.Model
	keys   *listKeyMap
	config *config.Config

	editing string
	input   textinput.Model
	choice  *selection.Model[string]
}

func NewListModel(cfg *config.Config) ListModel {
	keys := newListKeyMap()

	l := list.New(items(cfg), list.NewDefaultDelegate(), 0, 0)
	l.Title = "Settings"
	l.Styles.Title = titleStyle
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.edit}
	}

	input := textinput.New()
	input.Cursor.Style = cursorStyle
	input.TextStyle = textStyle
	input.PromptStyle = promptStyle

	return ListModel{list: l, keys: keys, config: cfg, input: input}
}

func items(cfg *config.Config) []list.Item {
	var out []list.Item
	for _, s := range cfg.Settings() {
		out = append(out, ListItem{setting: s})
	}
	return out
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		if m.editing != "" {
			return m.updateEditing(msg)
		}
		if m.list.FilterState() != list.Filtering && key.Matches(msg, m.keys.edit) {
			return m.startEditing()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m ListModel) startEditing() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return m, nil
	}
	m.editing = item.setting.Key

	if len(item.setting.Choices) > 0 {
		sel := selection.New("Choose a value for "+item.setting.Key+".", item.setting.Choices)
		sel.Filter = nil
		m.choice = selection.NewModel(sel)
		return m, m.choice.Init()
	}

	m.choice = nil
	m.input.SetValue(item.setting.Value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m ListModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.cancel) {
		m.stopEditing()
		return m, nil
	}

	if !key.Matches(msg, m.keys.edit) {
		var cmd tea.Cmd
		if m.choice != nil {
			_, cmd = m.choice.Update(msg)
		} else {
			m.input, cmd = m.input.Update(msg)
		}
		return m, cmd
	}

	value := m.input.Value()
	if m.choice != nil {
		c, err := m.choice.Value()
		if err != nil {
			return m, nil
		}
		value = c
	}

	editing := m.editing
	m.stopEditing()
	return m, m.apply(editing, value)
}

func (m *ListModel) stopEditing() {
	m.editing = ""
	m.choice = nil
	m.input.Blur()
	m.input.Reset()
}

// apply stores and saves one setting, refreshing the list from the config.
func (m *ListModel) apply(name, value string) tea.Cmd {
	if err := m.config.Set(name, value); err != nil {
		return m.list.NewStatusMessage(errorMessageStyle(err.Error()))
	}
	if err := m.config.Save(); err != nil {
		return m.list.NewStatusMessage(errorMessageStyle(fmt.Sprintf("failed to save config: %v", err)))
	}

	cmd := m.list.SetItems(items(m.config))
	return tea.Batch(cmd, m.list.NewStatusMessage(statusMessageStyle("Updated and Saved: "+name)))
}

func (m ListModel) View() string {
	if m.editing != "" {
		if m.choice != nil {
			return appStyle.Render(m.choice.View())
		}
		return appStyle.Render(editorStyle.Render(m.editing + "\n\n" + m.input.View()))
	}
	return appStyle.Render(m.list.View())
}

func Run(c *config.Config) error {
	if _, err := tea.NewProgram(NewListModel(c), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running settings menu: %w", err)
	}
	return nil
}
