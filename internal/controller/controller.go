package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cowork/internal/models"
	"github.com/desertthunder/cowork/internal/repositories"
	"github.com/desertthunder/cowork/internal/services"
	"github.com/desertthunder/cowork/internal/shared"
)

// seatSlot is one grid entry with a select handler bound to its own number.
type seatSlot struct {
	number    int
	available bool
	onSelect  func(ctx context.Context) bool
}

// Options configures a [Controller]. Nil Store, Notifier and Logger fall back to an
// in-memory store, a silent notifier and a discarding logger.
type Options struct {
	API      services.ReservationAPI
	Store    repositories.TokenStore
	Notifier Notifier
	Logger   *log.Logger
}

// Controller drives the login, availability and reservation workflow.
//
// It is safe for concurrent use; the lock is never held across a network call.
type Controller struct {
	api      services.ReservationAPI
	store    repositories.TokenStore
	notifier Notifier
	logger   *log.Logger

	mu       sync.Mutex
	view     View
	token    string
	date     string
	seats    []seatSlot
	gridGen  int
	availSeq uint64
}

// New creates a controller in the LoggedOut view.
func New(opts Options) *Controller {
	if opts.Store == nil {
		opts.Store = repositories.NewMemoryStore()
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(string) {})
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}

	return &Controller{
		api:      opts.API,
		store:    opts.Store,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		view:     LoggedOut,
	}
}

// Start resolves the initial view: Dashboard when a token is stored, LoginForm otherwise.
func (c *Controller) Start(ctx context.Context) View {
	token, ok, err := c.store.Get(ctx, models.TokenKey)
	if err != nil {
		c.logger.Warn("failed to read stored token", "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ok && token != "" {
		c.token = token
		c.enterDashboardLocked()
	} else {
		c.view = LoginForm
	}
	return c.view
}

// Login exchanges credentials for a token, persists it and enters the Dashboard.
func (c *Controller) Login(ctx context.Context, username, password string) bool {
	token, err := c.api.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		c.logger.Debug("login failed", "username", username, "error", err)
		c.alert(failureMessage(err, MsgLoginFailed, MsgLoginError))
		return false
	}

	c.establishSession(ctx, token)
	return true
}

// Register creates an account and returns to the LoginForm.
func (c *Controller) Register(ctx context.Context, username, password string) bool {
	if err := c.api.Register(ctx, models.Credentials{Username: username, Password: password}); err != nil {
		c.logger.Debug("registration failed", "username", username, "error", err)
		c.alert(failureMessage(err, MsgRegisterFailed, MsgRegisterError))
		return false
	}

	c.alert(MsgRegisterSuccess)
	c.setView(LoginForm)
	return true
}

// Logout forgets the stored token and returns to the LoginForm. No request is made.
func (c *Controller) Logout(ctx context.Context) {
	if err := c.store.Delete(ctx, models.TokenKey); err != nil {
		c.logger.Error("failed to delete stored token", "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = ""
	c.date = ""
	c.seats = nil
	c.availSeq++
	c.view = LoginForm
}

func (c *Controller) ShowLogin()    { c.setView(LoginForm) }
func (c *Controller) ShowRegister() { c.setView(RegisterForm) }

// CompleteIdentitySignIn accepts the outcome of the third-party sign-in flow.
//
// A non-empty token is stored as the session token and the Dashboard is entered.
func (c *Controller) CompleteIdentitySignIn(ctx context.Context, token string, err error) bool {
	if err != nil || token == "" {
		c.logger.Error("identity sign-in failed", "error", err)
		c.alert(MsgIdentityFailed)
		return false
	}

	c.establishSession(ctx, token)
	return true
}

// InitializeSeatGrid rebuilds seats 1..[models.SeatCount], all available, and invalidates
// any availability check still in flight.
func (c *Controller) InitializeSeatGrid() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initGridLocked()
}

// SelectDate sets the reservation date and refreshes availability. An empty date clears
// the selection.
func (c *Controller) SelectDate(ctx context.Context, date string) error {
	if err := c.SetDate(date); err != nil {
		return err
	}

	c.CheckAvailability(ctx)
	return nil
}

// SetDate validates and stores the reservation date without contacting the server. Checks
// still in flight for the previous date are discarded.
func (c *Controller) SetDate(date string) error {
	if date != "" {
		if err := models.ValidateDate(date); err != nil {
			return fmt.Errorf("%w: %w", shared.ErrValidation, err)
		}
	}

	c.mu.Lock()
	c.date = date
	c.availSeq++
	c.mu.Unlock()
	return nil
}

// CheckAvailability fetches availability for the selected date and applies it to the grid.
//
// Without a date it does nothing. Failures are logged, never alerted.
func (c *Controller) CheckAvailability(ctx context.Context) {
	if _, err := c.Refresh(ctx); err != nil {
		c.logger.Error("availability check failed", "error", err)
	}
}

// Refresh is CheckAvailability for callers that act on the outcome. It reports whether the
// response was applied to the grid; a response overtaken by a newer date or check is dropped
// with a nil error.
func (c *Controller) Refresh(ctx context.Context) (bool, error) {
	c.mu.Lock()
	date, token := c.date, c.token
	if date == "" {
		c.mu.Unlock()
		return false, nil
	}
	c.availSeq++
	seq := c.availSeq
	c.mu.Unlock()

	availability, err := c.api.CheckAvailability(ctx, token, date)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.availSeq || date != c.date {
		c.logger.Debug("discarding stale availability response", "date", date, "seq", seq)
		return false, nil
	}

	for _, a := range availability {
		if a.SeatNumber < 1 || a.SeatNumber > len(c.seats) {
			continue
		}
		c.seats[a.SeatNumber-1].available = a.Available
	}
	return true, nil
}

// ReserveSeat submits a bearer-authenticated reservation for seat number on the selected date.
//
// The grid is not changed locally; a successful reservation triggers a fresh availability check.
func (c *Controller) ReserveSeat(ctx context.Context, number int) bool {
	c.mu.Lock()
	date, token := c.date, c.token
	c.mu.Unlock()

	if date == "" {
		c.alert(MsgSelectDate)
		return false
	}

	req := models.ReservationRequest{SeatNumber: number, ReservationDate: date}
	if err := c.api.Reserve(ctx, token, req); err != nil {
		c.logger.Debug("reservation failed", "seat", number, "date", date, "error", err)
		c.alert(failureMessage(err, MsgReserveFailed, MsgReserveError))
		return false
	}

	c.alert(MsgReserveSuccess)
	c.CheckAvailability(ctx)
	return true
}

// SelectSeat invokes the handler bound to seat number. It reports false when the seat is not
// on the grid.
func (c *Controller) SelectSeat(ctx context.Context, number int) bool {
	c.mu.Lock()
	if number < 1 || number > len(c.seats) {
		c.mu.Unlock()
		c.logger.Warn("seat not on grid", "seat", number)
		return false
	}
	handler := c.seats[number-1].onSelect
	c.mu.Unlock()

	return handler(ctx)
}

// SecureReserve submits an API-key authenticated reservation.
func (c *Controller) SecureReserve(ctx context.Context, req models.SecureReservationRequest) bool {
	if err := req.Validate(); err != nil {
		c.alert(secureErrorPrefix + err.Error())
		return false
	}

	if err := c.api.SecureReserve(ctx, req); err != nil {
		c.logger.Debug("secure reservation failed", "error", err)
		detail := services.DetailOf(err)
		if detail == "" {
			detail = err.Error()
		}
		c.alert(secureErrorPrefix + detail)
		return false
	}

	c.alert(MsgSecureSuccess)
	return true
}

// View returns the current panel.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Date returns the selected reservation date, or "".
func (c *Controller) Date() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.date
}

// Session returns the current session.
func (c *Controller) Session() models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.Session{Token: c.token}
}

// Seats returns a copy of the grid.
func (c *Controller) Seats() []models.Seat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// GridGeneration counts grid rebuilds.
func (c *Controller) GridGeneration() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gridGen
}

func (c *Controller) snapshotLocked() []models.Seat {
	seats := make([]models.Seat, len(c.seats))
	for i, s := range c.seats {
		seats[i] = models.Seat{Number: s.number, Available: s.available}
	}
	return seats
}

func (c *Controller) establishSession(ctx context.Context, token string) {
	if err := c.store.Set(ctx, models.TokenKey, token); err != nil {
		c.logger.Error("failed to persist session token", "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.enterDashboardLocked()
}

func (c *Controller) enterDashboardLocked() {
	c.view = Dashboard
	c.initGridLocked()
}

func (c *Controller) initGridLocked() {
	c.gridGen++
	c.availSeq++
	c.seats = make([]seatSlot, models.SeatCount)
	for i := range c.seats {
		c.seats[i] = c.newSeat(i + 1)
	}
}

// newSeat binds the select handler to number.
func (c *Controller) newSeat(number int) seatSlot {
	return seatSlot{
		number:    number,
		available: true,
		onSelect: func(ctx context.Context) bool {
			return c.ReserveSeat(ctx, number)
		},
	}
}

func (c *Controller) setView(v View) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

func (c *Controller) alert(message string) {
	c.notifier.Alert(message)
}

// failureMessage maps an error to the message shown for a failed action: the server detail
// when present, fallback for other server failures, transport for everything else.
func failureMessage(err error, fallback, transport string) string {
	var apiErr *services.APIError
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fallback
	case errors.Is(err, shared.ErrServer):
		return fallback
	default:
		return transport
	}
}
