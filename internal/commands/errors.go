package commands

import "errors"

// ErrQuit is returned by Exec once a player has confirmed quitting and been
// retired. The caller should end the session.
var ErrQuit = errors.New("player quit")

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}
