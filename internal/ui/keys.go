package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the viewer key bindings. Scrolling keys not listed here are
// handled by the viewport's own key map.
type keyMap struct {
	Quit         key.Binding
	Help         key.Binding
	CycleTheme   key.Binding
	ToggleFollow key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Up           key.Binding
	Down         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleFollow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Toggle follow"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Bottom"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up", "pgup", "ctrl+u", "b"),
			key.WithHelp("k/pgup", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down", "pgdown", "ctrl+d", " "),
			key.WithHelp("j/pgdn", "Scroll down"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleFollow, k.Bottom, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.ToggleFollow, k.CycleTheme, k.Help, k.Quit},
	}
}
