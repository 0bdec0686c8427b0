package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering a username that already exists
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned when the username or password does not match
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// InvalidFieldError reports a malformed registration or password change field
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsInvalidField checks if error is an InvalidFieldError
func IsInvalidField(err error) bool {
	var fieldErr *InvalidFieldError
	return errors.As(err, &fieldErr)
}
