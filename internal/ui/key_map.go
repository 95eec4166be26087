package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
//
// Letter bindings only apply while the seat grid has focus; the forms need every rune for typing.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	next      key.Binding
	submit    key.Binding
	back      key.Binding
	swap      key.Binding
	date      key.Binding
	refresh   key.Binding
	logout    key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		next:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		swap:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/register")),
		date:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "date")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		logout:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "logout")),
		quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.next, k.submit, k.swap, k.forceQuit}
}

func (k keyMap) dateHelp() []key.Binding {
	reserve := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check availability"))
	return []key.Binding{reserve, k.back, k.forceQuit}
}

func (k keyMap) gridHelp() []key.Binding {
	reserve := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "reserve"))
	return []key.Binding{k.up, k.down, k.left, k.right, reserve, k.date, k.refresh, k.logout, k.quit}
}
