package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down      key.Binding
	Add, Toggle   key.Binding
	Edit, Delete  key.Binding
	Search, Clear key.Binding
	Hide, Quit    key.Binding
	Submit, Back  key.Binding
	Interrupt     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "check")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear search")),
		Hide:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide checked")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Interrupt: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Search, k.Hide, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Add, k.Toggle, k.Edit, k.Delete},
		{k.Search, k.Clear, k.Hide, k.Quit},
	}
}

// inputHelp is shown while the text input has focus.
type inputHelp struct{ k keyMap }

func (h inputHelp) ShortHelp() []key.Binding  { return []key.Binding{h.k.Submit, h.k.Back} }
func (h inputHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
