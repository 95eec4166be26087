// Google sign-in implementation of [OAuthService]
package services

import (
	"fmt"

	"github.com/desertthunder/cowork/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const defaultRedirectURI = "http://localhost:3000/callback"

// IdentityService signs users in with Google through the OAuth2 authorization code flow.
//
// The provider is a black box: it either fails or yields an identity token.
type IdentityService struct {
	config *oauth2.Config
}

// NewIdentityService creates the Google identity provider from client credentials.
func NewIdentityService(creds shared.IdentityConfig) (*IdentityService, error) {
	if creds.ClientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}
	if creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI := creds.RedirectURI
	if redirectURI == "" {
		redirectURI = defaultRedirectURI
	}

	return &IdentityService{
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  redirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}, nil
}

func (s *IdentityService) Name() string { return "Google" }

// GetAuthURL returns the consent page URL.
func (s *IdentityService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// GetOAuthConfig returns the underlying [oauth2.Config].
func (s *IdentityService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// IdentityToken prefers the OpenID id_token and falls back to the access token.
func (s *IdentityService) IdentityToken(token *oauth2.Token) (string, error) {
	if token == nil {
		return "", fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}
	if idToken, ok := token.Extra("id_token").(string); ok && idToken != "" {
		return idToken, nil
	}
	if token.AccessToken != "" {
		return token.AccessToken, nil
	}
	return "", fmt.Errorf("%w: token has no credential", shared.ErrAuthFailed)
}
