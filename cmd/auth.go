package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/cowork/internal/models"
	"github.com/desertthunder/cowork/internal/server"
	"github.com/desertthunder/cowork/internal/services"
	"github.com/desertthunder/cowork/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// authTimeout bounds how long the callback server waits for the browser.
var authTimeout = 2 * time.Minute

// AuthLogin exchanges credentials for a session token and stores it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")

	ctl, err := r.controller(ctx, nil)
	if err != nil {
		return err
	}

	r.logger.Info("logging in", "username", username)
	if !ctl.Login(ctx, username, cmd.String("password")) {
		return errActionFailed
	}

	return r.writePlain("✓ Logged in as %s\n", username)
}

// AuthRegister creates an account.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")

	ctl, err := r.controller(ctx, nil)
	if err != nil {
		return err
	}

	r.logger.Info("registering", "username", username)
	if !ctl.Register(ctx, username, cmd.String("password")) {
		return errActionFailed
	}

	return nil
}

// AuthLogout forgets the stored session token. The server is not contacted.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	ctl, err := r.controller(ctx, nil)
	if err != nil {
		return err
	}

	ctl.Logout(ctx)
	return r.writePlain("✓ Logged out\n")
}

// authStatus is the JSON shape of `auth status`.
type authStatus struct {
	LoggedIn  bool       `json:"logged_in"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

// AuthStatus reports whether a session token is stored and what it claims.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	store, err := r.tokenStore(ctx)
	if err != nil {
		return err
	}

	token, ok, err := store.Get(ctx, models.TokenKey)
	if err != nil {
		return err
	}

	status := authStatus{LoggedIn: ok && token != ""}
	if status.LoggedIn {
		if claims, err := services.InspectToken(token); err != nil {
			r.logger.Debug("stored token is opaque", "error", err)
		} else {
			status.Subject = claims.Subject
			status.ExpiresAt = claims.ExpiresAt
			status.Expired = claims.Expired(time.Now())
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	if !status.LoggedIn {
		return r.writePlain("✗ Not logged in\n")
	}

	r.writePlain("✓ Logged in\n")
	if status.Subject != "" {
		r.writePlain("User: %s\n", status.Subject)
	}
	if status.ExpiresAt != nil {
		state := "valid"
		if status.Expired {
			state = "expired"
		}
		r.writePlain("Expires: %s (%s)\n", status.ExpiresAt.Local().Format(time.RFC1123), state)
	}
	return nil
}

// AuthGoogle signs in through the third-party identity provider and stores the resulting
// token as the session token.
func (r *Runner) AuthGoogle(ctx context.Context, cmd *cli.Command) error {
	identity := r.identity
	if identity == nil {
		svc, err := services.NewIdentityService(r.config.Identity)
		if err != nil {
			return err
		}
		identity = svc
	}

	ctl, err := r.controller(ctx, nil)
	if err != nil {
		return err
	}

	var idToken string
	token, err := r.doOAuth(ctx, identity)
	if err == nil {
		idToken, err = identity.IdentityToken(token)
	}

	if !ctl.CompleteIdentitySignIn(ctx, idToken, err) {
		r.logger.Debug("identity sign-in rejected", "provider", identity.Name(), "error", err)
		return errActionFailed
	}

	return r.writePlain("✓ Signed in with %s\n", identity.Name())
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(ctx context.Context, oauthSrv services.OAuthService) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := oauthSrv.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(oauthSrv.GetOAuthConfig(), state)

	serverAddr := r.config.Server.Addr()
	httpServer := server.NewCallbackServer(serverAddr, oauthHandler, shared.WithLogger(r.logger, "provider", oauthSrv.Name()))

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", oauthSrv.Name(), serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for %s sign-in...\n", oauthSrv.Name())
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", authTimeout)

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	shutdown := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		shutdown()
		return nil, fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, authTimeout)
	case <-ctx.Done():
		shutdown()
		return nil, ctx.Err()
	}

	shutdown()

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}

	return result.Token, nil
}

// Status checks that the reservation API answers.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	r.logger.Debug("pinging reservation API", "url", r.api.BaseURL())

	message, err := r.api.Ping(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}

	r.writePlain("✓ Reservation API is reachable at %s\n", r.api.BaseURL())
	if message != "" {
		r.writePlain("Message: %s\n", message)
	}
	return nil
}
