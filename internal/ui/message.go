package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

var (
	_ tea.Msg = alertMsg("")
	_ tea.Msg = syncMsg{}
)

// alertMsg carries one user-facing message from [Alerts].
type alertMsg string

// syncMsg reports that a controller operation finished; the model re-reads controller state.
type syncMsg struct {
	err error
}

// Alerts is a buffered channel implementing controller.Notifier. Messages are dropped when
// the buffer is full.
type Alerts chan string

func NewAlerts() Alerts {
	return make(Alerts, 16)
}

func (a Alerts) Alert(message string) {
	select {
	case a <- message:
	default:
	}
}
