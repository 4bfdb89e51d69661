package auth

import "errors"

// Canonical user-facing messages. Each rejection class uses one fixed
// wording regardless of its root cause, so a client cannot tell an
// unknown identifier from a wrong password.
const (
	MsgInvalidCredentials = "Invalid credentials. Please try again."
	MsgAccountExists      = "Account already exists."
	MsgUnableToCreate     = "Unable to create account. Please try again."
	MsgEmptyPassword      = "Password cannot be empty. Please try again."
	MsgStoreFault         = "A database error occurred. Please try again."
)

// InvalidInputError reports malformed request data. Its message is
// user-correctable and safe to render.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func invalidInput(msg string) error { return &InvalidInputError{Message: msg} }

// RejectedError is an expected authentication or uniqueness failure.
// Only the canonical message is carried; the root cause stays server-side.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }

func rejected(msg string) error { return &RejectedError{Message: msg} }

// UserMessage maps a flow outcome to the only text allowed in a response
// body. Anything that is neither invalid input nor a rejection is a fault
// and renders as the fixed generic message; raw store or driver error
// text never reaches the client.
func UserMessage(err error) string {
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return invalid.Message
	}
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Message
	}
	return MsgStoreFault
}

// IsFault reports whether err is an unexpected internal fault rather than
// an expected outcome.
func IsFault(err error) bool {
	if err == nil {
		return false
	}
	var invalid *InvalidInputError
	var rej *RejectedError
	return !errors.As(err, &invalid) && !errors.As(err, &rej)
}
