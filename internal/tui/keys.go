package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the playground keymap, grouped for the help footer.
type keyMap struct {
	NewWindow  key.Binding
	CloseFront key.Binding
	CycleFront key.Binding
	NextLayout key.Binding
	PrevLayout key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NewWindow: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new window"),
		),
		CloseFront: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "close front"),
		),
		CycleFront: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "cycle front"),
		),
		NextLayout: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next layout"),
		),
		PrevLayout: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev layout"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewWindow, k.NextLayout, k.CycleFront, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewWindow, k.CloseFront, k.CycleFront},
		{k.NextLayout, k.PrevLayout},
		{k.Help, k.Quit},
	}
}
