package editor

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit       key.Binding
	save       key.Binding
	cycleMode  key.Binding
	switchPane key.Binding
	toggleTOC  key.Binding
	mark       key.Binding
	rephrase   key.Binding
	yank       key.Binding
	nextItem   key.Binding
	prevItem   key.Binding
	activate   key.Binding
	up         key.Binding
	down       key.Binding
	copyLink   key.Binding
	toggleHelp key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		cycleMode: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "edit/preview/split"),
		),
		switchPane: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "switch pane"),
		),
		toggleTOC: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "contents"),
		),
		mark: key.NewBinding(
			key.WithKeys("alt+v"),
			key.WithHelp("alt+v", "mark selection"),
		),
		rephrase: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "rephrase"),
		),
		yank: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "paste clipboard"),
		),
		nextItem: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next item"),
		),
		prevItem: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous item"),
		),
		activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("↵", "toggle/follow"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		copyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.save, k.cycleMode, k.switchPane, k.toggleTOC, k.toggleHelp, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.save, k.cycleMode, k.switchPane, k.toggleTOC},
		{k.mark, k.rephrase, k.yank},
		{k.nextItem, k.prevItem, k.activate},
		{k.up, k.down, k.copyLink, k.toggleHelp, k.quit},
	}
}
