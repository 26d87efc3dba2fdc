package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the bindings for the game screen
type keyMap struct {
	Hold   key.Binding
	Deal   key.Binding
	Advise key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Hold: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "toggle hold"),
		),
		Deal: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("space", "deal/draw"),
		),
		Advise: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply advice"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Deal, k.Hold, k.Advise, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Deal, k.Hold},
		{k.Advise, k.Help, k.Quit},
	}
}
