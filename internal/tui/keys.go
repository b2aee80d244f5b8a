package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Reload  key.Binding
	Search  key.Binding
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Details key.Binding
	Focus   key.Binding
	Cancel  key.Binding
	Submit  key.Binding
	Clear   key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Details: key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter/v", "details")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear log")),
		Dismiss: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.Details, k.Search, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Delete, k.Details},
		{k.Search, k.Reload, k.Focus, k.Cancel},
		{k.Clear, k.Dismiss, k.Quit},
	}
}

// formHelp is shown while the form has focus.
type formHelp struct{ k keyMap }

func (f formHelp) ShortHelp() []key.Binding {
	return []key.Binding{f.k.Submit, f.k.Focus, f.k.Cancel}
}

func (f formHelp) FullHelp() [][]key.Binding { return [][]key.Binding{f.ShortHelp()} }
