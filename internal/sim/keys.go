package sim

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the simulator key bindings
type keyMap struct {
	Button1 key.Binding
	Button2 key.Binding
	Both    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Button1, k.Button2, k.Both, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Button1, k.Button2},
		{k.Both, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Button1: key.NewBinding(
			key.WithKeys("1", "left"),
			key.WithHelp("1/←", "button 1"),
		),
		Button2: key.NewBinding(
			key.WithKeys("2", "right", "enter"),
			key.WithHelp("2/→", "button 2"),
		),
		Both: key.NewBinding(
			key.WithKeys("b", " "),
			key.WithHelp("b", "hold both"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
