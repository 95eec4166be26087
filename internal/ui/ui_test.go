package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/cowork/internal/controller"
	"github.com/desertthunder/cowork/internal/models"
	"github.com/desertthunder/cowork/internal/repositories"
	tu "github.com/desertthunder/cowork/internal/testing"
)

func newTestModel(t *testing.T, api *tu.MockAPI, token string) *Model {
	t.Helper()
	ctx := context.Background()

	store := repositories.NewMemoryStore()
	if token != "" {
		store.Set(ctx, models.TokenKey, token)
	}

	alerts := NewAlerts()
	ctl := controller.New(controller.Options{API: api, Store: store, Notifier: alerts})
	m := NewModel(ctx, ctl, alerts)

	run(t, m, m.start())
	return m
}

// run executes cmd synchronously and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestModelStart(t *testing.T) {
	t.Run("Without Token Shows Login", func(t *testing.T) {
		m := newTestModel(t, &tu.MockAPI{}, "")

		if m.view != controller.LoginForm {
			t.Fatalf("expected login view, got %s", m.view)
		}
		if !strings.Contains(m.View(), "Login") {
			t.Error("expected login form to render")
		}
	})

	t.Run("With Token Shows Dashboard", func(t *testing.T) {
		m := newTestModel(t, &tu.MockAPI{}, "stored")

		if m.view != controller.Dashboard {
			t.Fatalf("expected dashboard, got %s", m.view)
		}
		if len(m.seats) != models.SeatCount {
			t.Errorf("expected %d seats, got %d", models.SeatCount, len(m.seats))
		}
		if !strings.Contains(m.View(), "Seat Reservation") {
			t.Error("expected dashboard to render")
		}
	})
}

func TestModelLoginFlow(t *testing.T) {
	api := &tu.MockAPI{
		LoginFunc: func(_ context.Context, creds models.Credentials) (string, error) {
			if creds.Username != "ana" || creds.Password != "pw" {
				t.Errorf("unexpected credentials %+v", creds)
			}
			return "abc", nil
		},
	}
	m := newTestModel(t, api, "")

	m.Update(keyRunes("ana"))
	m.Update(keyType(tea.KeyTab))
	m.Update(keyRunes("pw"))

	if m.username.Value() != "ana" || m.password.Value() != "pw" {
		t.Fatalf("unexpected inputs %q / %q", m.username.Value(), m.password.Value())
	}

	_, cmd := m.Update(keyType(tea.KeyEnter))
	if !m.busy {
		t.Error("expected model to be busy while logging in")
	}
	run(t, m, cmd)

	if m.view != controller.Dashboard {
		t.Fatalf("expected dashboard after login, got %s", m.view)
	}
	if m.password.Value() != "" {
		t.Error("expected password to be cleared")
	}
	if m.focus != gridField {
		t.Errorf("expected grid focus, got %d", m.focus)
	}
}

func TestModelRegisterFlow(t *testing.T) {
	api := &tu.MockAPI{}
	m := newTestModel(t, api, "")

	m.Update(keyType(tea.KeyCtrlR))
	if m.view != controller.RegisterForm {
		t.Fatalf("expected register view, got %s", m.view)
	}

	m.Update(keyRunes("ana"))
	m.Update(keyType(tea.KeyEnter))
	m.Update(keyRunes("pw"))
	_, cmd := m.Update(keyType(tea.KeyEnter))
	run(t, m, cmd)

	if api.CallCount("Register") != 1 {
		t.Errorf("expected one register call, got %d", api.CallCount("Register"))
	}
	if m.view != controller.LoginForm {
		t.Errorf("expected login view after registration, got %s", m.view)
	}

	run(t, m, m.waitForAlert())
	if m.status != controller.MsgRegisterSuccess {
		t.Errorf("expected status %q, got %q", controller.MsgRegisterSuccess, m.status)
	}
}

func TestModelDashboard(t *testing.T) {
	t.Run("Cursor Movement", func(t *testing.T) {
		m := newTestModel(t, &tu.MockAPI{}, "stored")

		m.Update(keyType(tea.KeyRight))
		if m.cursor != 1 {
			t.Errorf("expected cursor 1, got %d", m.cursor)
		}
		m.Update(keyRunes("j"))
		if m.cursor != 1+models.GridColumns {
			t.Errorf("expected cursor %d, got %d", 1+models.GridColumns, m.cursor)
		}
		m.Update(keyType(tea.KeyUp))
		m.Update(keyType(tea.KeyUp))
		if m.cursor != 1 {
			t.Errorf("expected cursor to stay on grid, got %d", m.cursor)
		}
		m.Update(keyRunes("h"))
		m.Update(keyRunes("h"))
		if m.cursor != 0 {
			t.Errorf("expected cursor 0, got %d", m.cursor)
		}
	})

	t.Run("Reserve Without Date Shows Prompt", func(t *testing.T) {
		api := &tu.MockAPI{}
		m := newTestModel(t, api, "stored")

		_, cmd := m.Update(keyType(tea.KeyEnter))
		run(t, m, cmd)
		run(t, m, m.waitForAlert())

		if m.status != controller.MsgSelectDate {
			t.Errorf("expected %q, got %q", controller.MsgSelectDate, m.status)
		}
		if api.CallCount("Reserve") != 0 {
			t.Error("expected no reservation call")
		}
	})

	t.Run("Date Then Reserve", func(t *testing.T) {
		api := &tu.MockAPI{
			AvailabilityFunc: func(_ context.Context, _ string, date string) ([]models.SeatAvailability, error) {
				return []models.SeatAvailability{{SeatNumber: 1, Available: false}}, nil
			},
		}
		m := newTestModel(t, api, "stored")

		m.Update(keyRunes("d"))
		if m.focus != dateField {
			t.Fatalf("expected date focus, got %d", m.focus)
		}
		m.Update(keyRunes("2025-03-01"))
		_, cmd := m.Update(keyType(tea.KeyEnter))
		run(t, m, cmd)

		if m.seats[0].Available {
			t.Error("expected seat 1 to be reserved after availability check")
		}

		m.Update(keyType(tea.KeyRight))
		m.Update(keyType(tea.KeyRight))
		_, cmd = m.Update(keyType(tea.KeyEnter))
		run(t, m, cmd)

		var reserved tu.Call
		for _, c := range api.Calls() {
			if c.Method == "Reserve" {
				reserved = c
			}
		}
		if reserved.Seat != 3 || reserved.Date != "2025-03-01" {
			t.Errorf("unexpected reservation %+v", reserved)
		}
	})

	t.Run("Invalid Date Shows Error", func(t *testing.T) {
		api := &tu.MockAPI{}
		m := newTestModel(t, api, "stored")

		m.Update(keyRunes("d"))
		m.Update(keyRunes("tomorrow"))
		_, cmd := m.Update(keyType(tea.KeyEnter))
		run(t, m, cmd)

		if !strings.Contains(m.status, "YYYY-MM-DD") {
			t.Errorf("expected validation message, got %q", m.status)
		}
		if api.CallCount("CheckAvailability") != 0 {
			t.Error("expected no availability call")
		}
	})

	t.Run("Letters Type Into Date Field", func(t *testing.T) {
		m := newTestModel(t, &tu.MockAPI{}, "stored")

		m.Update(keyRunes("d"))
		m.Update(keyRunes("q"))

		if m.view != controller.Dashboard || m.focus != dateField {
			t.Fatalf("expected to stay in the date field, got %s/%d", m.view, m.focus)
		}
		if m.date.Value() != "q" {
			t.Errorf("expected date input to receive q, got %q", m.date.Value())
		}
	})

	t.Run("Logout", func(t *testing.T) {
		api := &tu.MockAPI{}
		m := newTestModel(t, api, "stored")

		_, cmd := m.Update(keyRunes("x"))
		run(t, m, cmd)

		if m.view != controller.LoginForm {
			t.Errorf("expected login view, got %s", m.view)
		}
		if m.focus != usernameField {
			t.Errorf("expected username focus, got %d", m.focus)
		}
		if len(api.Calls()) != 0 {
			t.Errorf("expected no network calls, got %+v", api.Calls())
		}
	})

	t.Run("Quit", func(t *testing.T) {
		m := newTestModel(t, &tu.MockAPI{}, "stored")

		_, cmd := m.Update(keyRunes("q"))
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestAlerts(t *testing.T) {
	a := make(Alerts, 1)
	a.Alert("first")
	a.Alert("dropped")

	if got := <-a; got != "first" {
		t.Errorf("expected first, got %q", got)
	}
	select {
	case extra := <-a:
		t.Errorf("expected full buffer to drop, got %q", extra)
	default:
	}
}

func TestRenderGrid(t *testing.T) {
	m := newTestModel(t, &tu.MockAPI{}, "stored")

	grid := m.renderGrid()
	for _, n := range []string{"01", "05", "06", "20"} {
		if !strings.Contains(grid, n) {
			t.Errorf("expected grid to contain seat %s", n)
		}
	}
	if rows := strings.Count(grid, "\n") + 1; rows != models.SeatCount/models.GridColumns {
		t.Errorf("expected %d rows, got %d", models.SeatCount/models.GridColumns, rows)
	}
}
