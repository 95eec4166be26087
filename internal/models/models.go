// package models defines the data model for the coworking reservation client
package models

import (
	"fmt"
	"time"
)

// SeatCount is the fixed number of reservable seats in the grid.
const SeatCount = 20

// GridColumns is the number of seats per row wherever the grid is drawn.
const GridColumns = 5

// DateLayout is the wire format for reservation dates.
const DateLayout = "2006-01-02"

// TokenKey is the fixed key under which the session token is persisted.
const TokenKey = "token"

// Session holds the client's authentication state. An empty Token means logged out.
type Session struct {
	Token string
}

// Active reports whether a token is present.
func (s Session) Active() bool { return s.Token != "" }

// Seat is a single reservable position in the grid.
type Seat struct {
	Number    int  `json:"seat_number"`
	Available bool `json:"available"`
}

// SeatAvailability is one element of the availability response.
type SeatAvailability struct {
	SeatNumber int  `json:"seat_number"`
	Available  bool `json:"available"`
}

// Credentials are the username/password pair sent to /login and /register.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the success body of /login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// ReservationRequest is the bearer-authenticated reservation body. It is built per submit and never retained.
type ReservationRequest struct {
	SeatNumber      int    `json:"seat_number"`
	ReservationDate string `json:"reservation_date"`
}

// SecureReservationRequest is the API-key authenticated reservation body.
type SecureReservationRequest struct {
	UserName        string `json:"user_name"`
	SeatNumber      int    `json:"seat_number"`
	ReservationDate string `json:"reservation_date"`
}

// Validate checks the required fields of the API-key reservation form.
func (r SecureReservationRequest) Validate() error {
	if r.UserName == "" {
		return fmt.Errorf("user name is required")
	}
	if err := ValidateSeatNumber(r.SeatNumber); err != nil {
		return err
	}
	return ValidateDate(r.ReservationDate)
}

// Reservation is a stored reservation as reported by the API.
//
// The server stores seat numbers as strings; [SeatNumber] accepts either form on decode.
type Reservation struct {
	ID              int        `json:"id"`
	UserName        string     `json:"user_name"`
	SeatNumber      SeatNumber `json:"seat_number"`
	ReservationDate string     `json:"reservation_date"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// ReservationFilter narrows a reservation listing. Zero values are omitted.
type ReservationFilter struct {
	UserName        string
	SeatNumber      int
	ReservationDate string
}

// MessageResponse is the generic {"message": ...} body returned by several endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidateDate checks that date is a calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if date == "" {
		return fmt.Errorf("reservation date is required")
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("invalid date format. Use YYYY-MM-DD")
	}
	return nil
}

// ValidateSeatNumber checks that n is within [1, SeatCount].
func ValidateSeatNumber(n int) error {
	if n < 1 || n > SeatCount {
		return fmt.Errorf("seat number must be between 1 and %d, got %d", SeatCount, n)
	}
	return nil
}
