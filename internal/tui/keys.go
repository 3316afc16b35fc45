package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Hit   key.Binding
	Stick key.Binding
	New   key.Binding
	Up    key.Binding
	Down  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Hit: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hit"),
		),
		Stick: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stick"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new round"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hit, k.Stick, k.New, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hit, k.Stick, k.New},
		{k.Up, k.Down, k.Quit},
	}
}
