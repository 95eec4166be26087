package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/cowork/internal/controller"
	"github.com/desertthunder/cowork/internal/models"
)

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	var keys []key.Binding

	switch m.view {
	case controller.LoginForm:
		body = m.renderForm("Login")
		keys = m.keys.formHelp()
	case controller.RegisterForm:
		body = m.renderForm("Register")
		keys = m.keys.formHelp()
	case controller.Dashboard:
		body = m.renderDashboard()
		if m.focus == dateField {
			keys = m.keys.dateHelp()
		} else {
			keys = m.keys.gridHelp()
		}
	default:
		return styles.help.Render("Loading...")
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", body, m.renderStatus(), m.help.ShortHelpView(keys))
}

func (m *Model) renderForm(title string) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	return b.String()
}

func (m *Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Seat Reservation"))
	b.WriteString("\n")
	b.WriteString(m.date.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(styles.ok.Render("■ available") + "  " + styles.err.Render("■ reserved"))
	return b.String()
}

// renderGrid lays seats out in rows of [models.GridColumns].
func (m *Model) renderGrid() string {
	rows := make([]string, 0, len(m.seats)/models.GridColumns+1)
	cells := make([]string, 0, models.GridColumns)

	for i, seat := range m.seats {
		style := styles.ok
		if !seat.Available {
			style = styles.err
		}
		if i == m.cursor && m.focus == gridField {
			style = style.Inherit(styles.cursor)
		}
		cells = append(cells, style.Render(fmt.Sprintf(" %02d ", seat.Number)))

		if len(cells) == models.GridColumns || i == len(m.seats)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = cells[:0]
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderStatus() string {
	switch {
	case m.busy:
		return styles.help.Render("Working...")
	case m.status == "":
		return ""
	default:
		return styles.warn.Render(m.status)
	}
}
