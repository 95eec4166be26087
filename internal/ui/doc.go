// Package ui implements the interactive terminal front-end using bubbletea's Elm architecture.
//
// The [Model] mirrors the controller's four views:
//  1. LoginForm : username and password inputs, submit with enter
//  2. RegisterForm : same inputs, creates an account and returns to login
//  3. Dashboard : a date input above the 20-seat grid; enter on a seat reserves it
//
// Every controller operation runs inside a [tea.Cmd] so network calls never block rendering.
// When a command finishes the model re-reads view and grid state from the controller.
// User-facing messages arrive through [Alerts], a channel-backed notifier drained by a
// long-lived command, and are shown on the status line.
//
// Keyboard navigation uses arrow keys or vim-style bindings (h/j/k/l) on the grid with contextual
// help rendered by charmbracelet/bubbles/help.
package ui
