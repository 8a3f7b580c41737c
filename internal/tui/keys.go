package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Decrement key.Binding
	Increment key.Binding
	Select    key.Binding
	Settings  key.Binding
	Info      key.Binding
	Brighter  key.Binding
	Darker    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Decrement: key.NewBinding(key.WithKeys("left", "h", "j"), key.WithHelp("←/h", "turn left")),
		Increment: key.NewBinding(key.WithKeys("right", "l", "k"), key.WithHelp("→/l", "turn right")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "press")),
		Settings:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "settings")),
		Info:      key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		Brighter:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more light")),
		Darker:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less light")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Decrement, k.Increment, k.Select, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Decrement, k.Increment, k.Select},
		{k.Settings, k.Info},
		{k.Brighter, k.Darker},
		{k.Help, k.Quit},
	}
}
