package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Remote API errors
	ErrNetwork             = fmt.Errorf("network failure")
	ErrServer              = fmt.Errorf("server rejected request")
	ErrMalformedResponse   = fmt.Errorf("malformed response body")
	ErrServiceUnavailable  = fmt.Errorf("service unavailable")
	ErrReservationNotFound = fmt.Errorf("reservation not found")

	// Input validation errors
	ErrValidation      = fmt.Errorf("validation failed")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Token store errors
	ErrStoreUnavailable = fmt.Errorf("token store unavailable")
)
