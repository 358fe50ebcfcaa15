package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means no active session where one is required.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound means an expected document is missing.
	ErrNotFound = errors.New("not found")
	// ErrValidation covers rejected input (non-UCL email, empty required field).
	ErrValidation = errors.New("validation failed")
	// ErrTransport covers failed or timed-out backend calls.
	ErrTransport = errors.New("transport error")
)

// Transport tags err as a transport failure while keeping its message.
func Transport(err error) error {
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
