// Package controller implements the session and seat-reservation workflow.
//
// A [Controller] owns the session token, the selected reservation date and the 20-seat grid.
// Front-ends (the CLI and the TUI) call its operations and observe state through snapshot
// accessors; user-facing outcomes are delivered through a [Notifier].
//
// Views follow a four-state machine:
//
//	LoggedOut -> LoginForm | Dashboard   (Start, depending on a stored token)
//	LoginForm -> Dashboard               (Login success)
//	RegisterForm -> LoginForm            (Register success)
//	any -> LoginForm                     (Logout, ShowLogin)
//	any -> RegisterForm                  (ShowRegister)
//
// Entering the Dashboard always rebuilds the grid. Availability responses carry a sequence
// number and are applied only while they are the latest request for the still-selected date.
package controller
