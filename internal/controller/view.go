package controller

// View is the panel currently presented to the user.
type View int

const (
	LoggedOut View = iota
	LoginForm
	RegisterForm
	Dashboard
)

func (v View) String() string {
	switch v {
	case LoggedOut:
		return "logged_out"
	case LoginForm:
		return "login"
	case RegisterForm:
		return "register"
	case Dashboard:
		return "dashboard"
	default:
		return ""
	}
}

// Notifier delivers user-facing messages.
type Notifier interface {
	Alert(message string)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(message string)

func (f NotifierFunc) Alert(message string) { f(message) }

// User-facing messages.
const (
	MsgLoginFailed     = "Login failed."
	MsgLoginError      = "An error occurred during login."
	MsgRegisterSuccess = "Registration successful! Please login."
	MsgRegisterFailed  = "Registration failed."
	MsgRegisterError   = "An error occurred during registration."
	MsgSelectDate      = "Please select a date first."
	MsgReserveSuccess  = "Seat reserved successfully."
	MsgReserveFailed   = "Reservation failed."
	MsgReserveError    = "An error occurred while reserving the seat."
	MsgSecureSuccess   = "Reservation Successful!"
	MsgIdentityFailed  = "Sign-in failed."
	secureErrorPrefix  = "Error: "
)
