package services

import "errors"

// ErrInvalidCredentials collapses unknown-email and wrong-password into a
// single answer so login responses do not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("Invalid credentials")

// ErrRegistrationClosed is returned by signup once the first admin exists.
var ErrRegistrationClosed = errors.New("Registration is closed. Please contact admin for new accounts.")

// ValidationError marks missing or malformed input; handlers map it to 400.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Err: err}
}

func invalidMsg(msg string) error {
	return &ValidationError{Err: errors.New(msg)}
}
