package services

import (
	"errors"
	"net/url"
	"testing"

	"github.com/desertthunder/cowork/internal/shared"
	"golang.org/x/oauth2"
)

func TestIdentityService(t *testing.T) {
	creds := shared.IdentityConfig{ClientID: "client", ClientSecret: "secret"}

	t.Run("New", func(t *testing.T) {
		t.Run("requires client id", func(t *testing.T) {
			_, err := NewIdentityService(shared.IdentityConfig{ClientSecret: "secret"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("requires client secret", func(t *testing.T) {
			_, err := NewIdentityService(shared.IdentityConfig{ClientID: "client"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("defaults redirect URI", func(t *testing.T) {
			srv, err := NewIdentityService(creds)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if srv.GetOAuthConfig().RedirectURL != defaultRedirectURI {
				t.Errorf("expected default redirect, got %s", srv.GetOAuthConfig().RedirectURL)
			}
			if srv.Name() != "Google" {
				t.Errorf("expected Google, got %s", srv.Name())
			}
		})
	})

	t.Run("GetAuthURL carries state and client id", func(t *testing.T) {
		srv, _ := NewIdentityService(creds)

		u, err := url.Parse(srv.GetAuthURL("state-123"))
		if err != nil {
			t.Fatalf("invalid auth URL: %v", err)
		}
		q := u.Query()
		if q.Get("state") != "state-123" {
			t.Errorf("expected state-123, got %s", q.Get("state"))
		}
		if q.Get("client_id") != "client" {
			t.Errorf("expected client id, got %s", q.Get("client_id"))
		}
	})

	t.Run("IdentityToken", func(t *testing.T) {
		srv, _ := NewIdentityService(creds)

		withID := (&oauth2.Token{AccessToken: "access"}).WithExtra(map[string]any{"id_token": "identity"})
		if got, err := srv.IdentityToken(withID); err != nil || got != "identity" {
			t.Errorf("expected id_token, got %q (%v)", got, err)
		}

		accessOnly := &oauth2.Token{AccessToken: "access"}
		if got, err := srv.IdentityToken(accessOnly); err != nil || got != "access" {
			t.Errorf("expected access token fallback, got %q (%v)", got, err)
		}

		if _, err := srv.IdentityToken(nil); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed for nil token, got %v", err)
		}

		if _, err := srv.IdentityToken(&oauth2.Token{}); !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed for empty token, got %v", err)
		}
	})
}
