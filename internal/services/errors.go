// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// ValidationError means the caller-supplied request is malformed. It is always
// raised before any persistence happens. Key/Args let the HTTP layer localize
// the message; Message is the default-locale rendering used by Error().
type ValidationError struct {
	Key     string
	Args    []interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(key, format string, args ...interface{}) *ValidationError {
	return &ValidationError{
		Key:     key,
		Args:    args,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user with this email already exists")
)
