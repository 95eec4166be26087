// Package models defines the wire and domain types shared by the reservation client.
//
// [Session] is the only durable state; it is persisted under [TokenKey] by a token store.
// [Seat] values are rebuilt each time the dashboard is shown and their availability always
// comes from the latest [SeatAvailability] response.
//
// [ReservationRequest] and [SecureReservationRequest] correspond to the two reservation
// paths (bearer token and API key). Neither is retained after the request is sent.
package models
