package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	toggle  key.Binding
	all     key.Binding
	enter   key.Binding
	back    key.Binding
	isrc    key.Binding
	name    key.Binding
	both    key.Binding
	yes     key.Binding
	no      key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		all:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "continue")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		isrc:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "ISRC")),
		name:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "name + artist")),
		both:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "both")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "only show")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "remove")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle, k.all, k.enter},
		{k.isrc, k.name, k.both},
		{k.back, k.yes, k.no},
		{k.restart, k.quit},
	}
}
