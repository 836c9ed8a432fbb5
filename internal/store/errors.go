package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation references an id that is not in the store.
	ErrNotFound = errors.New("item not found")
	// ErrInvalidInput is returned for blank item names.
	ErrInvalidInput = errors.New("invalid input")
)

// Error records the failed operation and, when relevant, the item id.
type Error struct {
	Op  string
	ID  string
	Err error
}

func (e *Error) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func notFound(op, id string) error {
	return &Error{Op: op, ID: id, Err: ErrNotFound}
}

func invalid(op, id, msg string) error {
	return &Error{Op: op, ID: id, Err: fmt.Errorf("%w: %s", ErrInvalidInput, msg)}
}

// IsNotFound reports whether err is (or wraps) ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidInput reports whether err is (or wraps) ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
