package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Download   key.Binding
	Theme      key.Binding
	Next       key.Binding
	Prev       key.Binding
	RemoveChip key.Binding
	Toggle     key.Binding
	Purge      key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Download:   key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "download")),
		Theme:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Next:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:       key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		RemoveChip: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove chip")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "toggle")),
		Purge:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "delete exports")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) footer() []key.Binding {
	return []key.Binding{k.Next, k.RemoveChip, k.Toggle, k.Download, k.Theme, k.Purge, k.Quit}
}
