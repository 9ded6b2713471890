package oracle

import (
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
)

// Error is a failed oracle call with a message fit for showing to the user.
type Error struct {
	Op      string
	Message string
	// Status is the HTTP status for remote failures, 0 otherwise.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns the human-readable part of err.
func Message(err error) string {
	var oe *Error
	if errors.As(err, &oe) {
		return oe.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsUnavailable reports whether err comes from an open circuit breaker.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// isClientError reports whether err is a 4xx response, which says nothing about the
// health of the remote service.
func isClientError(err error) bool {
	var oe *Error
	return errors.As(err, &oe) && oe.Status >= 400 && oe.Status < 500
}
