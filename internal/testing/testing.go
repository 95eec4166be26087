// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/desertthunder/cowork/internal/models"
)

// Call records one invocation on [MockAPI].
type Call struct {
	Method string
	Token  string
	Date   string
	Seat   int
}

// MockAPI is a test double for services.ReservationAPI.
//
// Each Func field overrides the default behaviour; all calls are recorded.
type MockAPI struct {
	mu    sync.Mutex
	calls []Call

	LoginFunc         func(ctx context.Context, creds models.Credentials) (string, error)
	RegisterFunc      func(ctx context.Context, creds models.Credentials) error
	AvailabilityFunc  func(ctx context.Context, token, date string) ([]models.SeatAvailability, error)
	ReserveFunc       func(ctx context.Context, token string, req models.ReservationRequest) error
	SecureReserveFunc func(ctx context.Context, req models.SecureReservationRequest) error
}

func (m *MockAPI) record(c Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// Calls returns a copy of the recorded calls.
func (m *MockAPI) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// CallCount returns how many calls were made to method.
func (m *MockAPI) CallCount(method string) int {
	n := 0
	for _, c := range m.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockAPI) Login(ctx context.Context, creds models.Credentials) (string, error) {
	m.record(Call{Method: "Login"})
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, creds)
	}
	return "token", nil
}

func (m *MockAPI) Register(ctx context.Context, creds models.Credentials) error {
	m.record(Call{Method: "Register"})
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, creds)
	}
	return nil
}

func (m *MockAPI) CheckAvailability(ctx context.Context, token, date string) ([]models.SeatAvailability, error) {
	m.record(Call{Method: "CheckAvailability", Token: token, Date: date})
	if m.AvailabilityFunc != nil {
		return m.AvailabilityFunc(ctx, token, date)
	}
	return []models.SeatAvailability{}, nil
}

func (m *MockAPI) Reserve(ctx context.Context, token string, req models.ReservationRequest) error {
	m.record(Call{Method: "Reserve", Token: token, Date: req.ReservationDate, Seat: req.SeatNumber})
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, token, req)
	}
	return nil
}

func (m *MockAPI) SecureReserve(ctx context.Context, req models.SecureReservationRequest) error {
	m.record(Call{Method: "SecureReserve", Date: req.ReservationDate, Seat: req.SeatNumber})
	if m.SecureReserveFunc != nil {
		return m.SecureReserveFunc(ctx, req)
	}
	return nil
}

// Alerts records user-facing messages.
type Alerts struct {
	mu       sync.Mutex
	messages []string
}

func (a *Alerts) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

// Messages returns a copy of the recorded messages.
func (a *Alerts) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}

// Last returns the most recent message, or "" when none were recorded.
func (a *Alerts) Last() string {
	msgs := a.Messages()
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)
