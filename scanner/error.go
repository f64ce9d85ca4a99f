package scanner

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch indicates that no rule matched at the cursor.
	ErrNoMatch = errors.New("scanner: no rule matches")

	// ErrInvalidConfig indicates that the provided configuration is invalid.
	ErrInvalidConfig = errors.New("scanner: invalid configuration")

	// ErrNilMatcher is returned by New when no matcher is given.
	ErrNilMatcher = errors.New("scanner: nil matcher")
)

// Error reports where a scan stopped.
type Error struct {
	Offset int
	Pos    Pos
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%v at offset %d (%v)", e.Cause, e.Offset, e.Pos)
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *Error) Unwrap() error {
	return e.Cause
}
