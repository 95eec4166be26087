package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cowork/internal/controller"
	"github.com/desertthunder/cowork/internal/models"
)

// field identifies the focused input.
type field int

const (
	usernameField field = iota
	passwordField
	dateField
	gridField
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	ctl      *controller.Controller
	alerts   Alerts
	view     controller.View
	focus    field
	username textinput.Model
	password textinput.Model
	date     textinput.Model
	seats    []models.Seat
	cursor   int
	status   string
	busy     bool
	width    int
	height   int
	help     help.Model
	keys     keyMap
}

// NewModel creates a TUI over ctl. alerts must be the notifier ctl was built with.
func NewModel(ctx context.Context, ctl *controller.Controller, alerts Alerts) *Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "Username: "
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Password: "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.Prompt = "Date: "
	date.CharLimit = len(models.DateLayout)

	return &Model{
		ctx:      ctx,
		ctl:      ctl,
		alerts:   alerts,
		view:     controller.LoggedOut,
		username: username,
		password: password,
		date:     date,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init resolves the starting view and begins draining alerts.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.start(), m.waitForAlert(), textinput.Blink)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case alertMsg:
		m.status = string(msg)
		return m, m.waitForAlert()

	case syncMsg:
		m.busy = false
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.sync()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		switch m.view {
		case controller.LoginForm, controller.RegisterForm:
			return m.handleFormKeys(msg)
		case controller.Dashboard:
			return m.handleDashboardKeys(msg)
		}
	}

	return m.updateInputs(msg)
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.swap):
		if m.view == controller.LoginForm {
			m.ctl.ShowRegister()
		} else {
			m.ctl.ShowLogin()
		}
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.next):
		m.toggleFormFocus()
		return m, nil
	case key.Matches(msg, m.keys.submit):
		if m.focus == usernameField {
			m.toggleFormFocus()
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		m.busy = true
		username, password := m.username.Value(), m.password.Value()
		if m.view == controller.RegisterForm {
			return m, m.register(username, password)
		}
		return m, m.login(username, password)
	}

	return m.updateInputs(msg)
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == dateField {
		switch {
		case key.Matches(msg, m.keys.submit):
			m.setFocus(gridField)
			return m, m.selectDate(m.date.Value())
		case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.next):
			m.setFocus(gridField)
			return m, nil
		}
		return m.updateInputs(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.up):
		m.moveCursor(-models.GridColumns)
	case key.Matches(msg, m.keys.down):
		m.moveCursor(models.GridColumns)
	case key.Matches(msg, m.keys.left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.date), key.Matches(msg, m.keys.next):
		m.setFocus(dateField)
	case key.Matches(msg, m.keys.refresh):
		return m, m.refresh()
	case key.Matches(msg, m.keys.logout):
		return m, m.logout()
	case key.Matches(msg, m.keys.submit):
		if len(m.seats) == 0 {
			return m, nil
		}
		return m, m.selectSeat(m.seats[m.cursor].Number)
	}
	return m, nil
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case usernameField:
		m.username, cmd = m.username.Update(msg)
	case passwordField:
		m.password, cmd = m.password.Update(msg)
	case dateField:
		m.date, cmd = m.date.Update(msg)
	}
	return m, cmd
}

// sync copies view and grid state from the controller and fixes focus for the new view.
func (m *Model) sync() {
	prev := m.view
	m.view = m.ctl.View()
	m.seats = m.ctl.Seats()
	if m.cursor >= len(m.seats) {
		m.cursor = 0
	}

	switch m.view {
	case controller.LoginForm, controller.RegisterForm:
		if m.focus != usernameField && m.focus != passwordField {
			m.setFocus(usernameField)
		}
		if prev == controller.Dashboard {
			m.date.SetValue("")
		}
	case controller.Dashboard:
		if prev != controller.Dashboard {
			m.password.SetValue("")
			m.setFocus(gridField)
		}
	}
}

func (m *Model) toggleFormFocus() {
	if m.focus == usernameField {
		m.setFocus(passwordField)
	} else {
		m.setFocus(usernameField)
	}
}

func (m *Model) setFocus(f field) {
	m.focus = f
	m.username.Blur()
	m.password.Blur()
	m.date.Blur()

	switch f {
	case usernameField:
		m.username.Focus()
	case passwordField:
		m.password.Focus()
	case dateField:
		m.date.Focus()
	}
}

// moveCursor shifts the grid cursor by delta, staying on the grid.
func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.seats) {
		return
	}
	m.cursor = next
}

func (m *Model) start() tea.Cmd {
	return func() tea.Msg {
		m.ctl.Start(m.ctx)
		return syncMsg{}
	}
}

func (m *Model) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		m.ctl.Login(m.ctx, username, password)
		return syncMsg{}
	}
}

func (m *Model) register(username, password string) tea.Cmd {
	return func() tea.Msg {
		m.ctl.Register(m.ctx, username, password)
		return syncMsg{}
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		m.ctl.Logout(m.ctx)
		return syncMsg{}
	}
}

func (m *Model) selectDate(date string) tea.Cmd {
	return func() tea.Msg {
		return syncMsg{err: m.ctl.SelectDate(m.ctx, date)}
	}
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		m.ctl.CheckAvailability(m.ctx)
		return syncMsg{}
	}
}

func (m *Model) selectSeat(number int) tea.Cmd {
	return func() tea.Msg {
		m.ctl.SelectSeat(m.ctx, number)
		return syncMsg{}
	}
}

func (m *Model) waitForAlert() tea.Cmd {
	return func() tea.Msg {
		select {
		case message, ok := <-m.alerts:
			if !ok {
				return nil
			}
			return alertMsg(message)
		case <-m.ctx.Done():
			return nil
		}
	}
}
