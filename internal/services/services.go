// package services defines the clients for the remote collaborators of the reservation client:
// the reservation REST API and the third-party identity provider.
package services

import (
	"context"

	"github.com/desertthunder/cowork/internal/models"
	"golang.org/x/oauth2"
)

// ReservationAPI is the subset of the reservation REST API the controller drives.
type ReservationAPI interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, creds models.Credentials) (string, error)

	// Register creates an account.
	Register(ctx context.Context, creds models.Credentials) error

	// CheckAvailability returns per-seat availability for a YYYY-MM-DD date.
	CheckAvailability(ctx context.Context, token, date string) ([]models.SeatAvailability, error)

	// Reserve submits a bearer-authenticated reservation.
	Reserve(ctx context.Context, token string, req models.ReservationRequest) error

	// SecureReserve submits an API-key authenticated reservation.
	SecureReserve(ctx context.Context, req models.SecureReservationRequest) error
}

// OAuthService is implemented by identity providers that use the OAuth2 authorization code flow.
type OAuthService interface {
	// GetAuthURL returns the consent page URL for the given state token.
	GetAuthURL(state string) string

	// GetOAuthConfig returns the config used to exchange the authorization code.
	GetOAuthConfig() *oauth2.Config

	// IdentityToken extracts the opaque credential handed to the reservation client.
	IdentityToken(token *oauth2.Token) (string, error)

	// Name returns the provider name (e.g., "Google")
	Name() string
}

var (
	_ ReservationAPI = (*ReservationService)(nil)
	_ OAuthService   = (*IdentityService)(nil)
)
