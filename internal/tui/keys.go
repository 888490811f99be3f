package tui

import "github.com/charmbracelet/bubbles/key"

// listKeyMap defines key bindings for the item list
type listKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Home       key.Binding
	End        key.Binding
	Toggle     key.Binding
	SelectAll  key.Binding
	SelectNone key.Binding
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "toggle"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select shown"),
		),
		SelectNone: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "clear shown"),
		),
	}
}

// appKeyMap defines the bindings handled by AppModel regardless of focus
type appKeyMap struct {
	list    listKeyMap
	Focus   key.Binding
	Search  key.Binding
	Confirm key.Binding
	Abort   key.Binding
	Help    key.Binding
}

func newAppKeyMap() appKeyMap {
	return appKeyMap{
		list: newListKeyMap(),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch focus"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "confirm"),
		),
		Abort: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "abort"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k appKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.list.Toggle, k.Focus, k.Confirm, k.Abort, k.Help}
}

// FullHelp returns keybindings for the expanded help view
func (k appKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.list.Up, k.list.Down, k.list.Home, k.list.End},
		{k.list.Toggle, k.list.SelectAll, k.list.SelectNone},
		{k.Focus, k.Search, k.Confirm, k.Abort, k.Help},
	}
}
