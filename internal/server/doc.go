// Package server provides the loopback HTTP server used by the identity sign-in flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first).
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the authorization code callback. It validates the state
// parameter, exchanges the code for tokens using the request context, and delivers exactly
// one [OAuthResult] through a channel. Later callbacks are rejected.
//
// [NewCallbackServer] assembles the router, the request logger and the handler into an
// [http.Server] bound to the configured loopback address. The CLI starts it for the
// duration of one sign-in and shuts it down afterwards.
package server
