// Package services implements the HTTP clients for the reservation client's remote collaborators.
//
// # Reservation API
//
// [ReservationService] talks to the coworking reservation REST API. It implements [ReservationAPI],
// the interface the controller depends on, and adds the listing, lookup and cancellation calls used by the CLI.
//
// Two authentication schemes are in use:
//   - Bearer token: /reservations, /reservations/check-availability, DELETE /reservations/{id}
//   - X-API-Key header: /api/secure/reservations and /api/secure/reservations/{id}
//
// Every request carries a generated X-Request-ID header.
//
// # Error Handling
//
// Failures are classified with sentinel errors from the shared package:
//   - [shared.ErrNetwork] : the request never produced a response
//   - [shared.ErrServer] : non-2xx status, carried as an [APIError] with the server's detail message
//   - [shared.ErrAuthFailed] : 401/403 responses, in addition to ErrServer
//   - [shared.ErrMalformedResponse] : a 2xx body that does not decode
//   - [shared.ErrReservationNotFound] : 404 on reservation lookups and cancellations
//
// # Identity Provider
//
// [IdentityService] implements [OAuthService] for Google sign-in. The CLI runs the authorization code flow
// with a loopback callback server and hands the resulting identity token to the controller.
//
// [InspectToken] reads a bearer token's subject and expiry without verifying its signature.
package services
