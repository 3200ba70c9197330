package gallery

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the gallery key bindings.
type KeyMap struct {
	Up, Down key.Binding
	Play     key.Binding
	Replay   key.Binding
	Pause    key.Binding
	Reverse  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
		Play:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Replay:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "replay")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Reverse: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "reverse")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Play, k.Replay, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Play, k.Replay, k.Pause, k.Reverse},
		{k.Help, k.Quit},
	}
}
