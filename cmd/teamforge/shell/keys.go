package shell

import "github.com/charmbracelet/bubbles/key"

// globalKeys are active whenever no text input has focus.
type globalKeys struct {
	Recommend key.Binding
	Data      key.Binding
	About     key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newGlobalKeys() globalKeys {
	return globalKeys{
		Recommend: key.NewBinding(key.WithKeys("f1", "1"), key.WithHelp("1/F1", "recommend")),
		Data:      key.NewBinding(key.WithKeys("f2", "2"), key.WithHelp("2/F2", "data")),
		About:     key.NewBinding(key.WithKeys("f3", "3"), key.WithHelp("3/F3", "about")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// catalogKeys drive a catalog browser.
type catalogKeys struct {
	Search  key.Binding
	Filter  key.Binding
	Prev    key.Binding
	Next    key.Binding
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Edit    key.Binding
	Remove  key.Binding
	SwapTab key.Binding
	Accept  key.Binding
	Dismiss key.Binding
}

func newCatalogKeys() catalogKeys {
	return catalogKeys{
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Prev:    key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("←/p", "prev page")),
		Next:    key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("→/n", "next page")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Remove:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		SwapTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "heroes/skills")),
		Accept:  key.NewBinding(key.WithKeys("enter")),
		Dismiss: key.NewBinding(key.WithKeys("esc")),
	}
}

// workflowKeys drive the recommendation form and result list.
type workflowKeys struct {
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Reset     key.Binding
	Toggle    key.Binding
	Up        key.Binding
	Down      key.Binding
	Inspect   key.Binding
	Leave     key.Binding
}

func newWorkflowKeys() workflowKeys {
	return workflowKeys{
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Submit:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s/enter", "recommend")),
		Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Inspect:   key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("enter/i", "inspect")),
		Leave:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave form")),
	}
}

// overlayKeys are shared by every modal.
type overlayKeys struct {
	Close   key.Binding
	Cancel  key.Binding
	Save    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Confirm key.Binding
	Deny    key.Binding
}

func newOverlayKeys() overlayKeys {
	return overlayKeys{
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Cancel:  key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "cancel")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab")),
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
		Deny:    key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}
