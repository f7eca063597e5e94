package tui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var listKeys = listKeyMap{
	Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:    key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k listKeyMap) bindings() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Refresh}
}

type formKeyMap struct {
	Submit    key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
	NextColor key.Binding
	PrevColor key.Binding
}

var formKeys = formKeyMap{
	Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	NextColor: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next color")),
	PrevColor: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous color")),
}
