package shortcut

import (
	"errors"
	"fmt"
)

// Error kinds reported by shortcut operations. Match them with errors.Is.
var (
	ErrInvalidName       = errors.New("invalid shortcut name")
	ErrEmptyInput        = errors.New("name and command are required")
	ErrNotFound          = errors.New("shortcut not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrTimeout           = errors.New("timed out waiting for elevation")
	ErrBrokerUnavailable = errors.New("no privilege elevation mechanism available")
	ErrIOFailure         = errors.New("i/o failure")
)

// OpError records the operation and shortcut name an error occurred on.
type OpError struct {
	Op   string
	Name string
	Kind error
	Err  error
}

// NewOpError returns an OpError of the given kind. err may be nil.
func NewOpError(op, name string, kind, err error) *OpError {
	return &OpError{Op: op, Name: name, Kind: kind, Err: err}
}

func (e *OpError) Error() string {
	prefix := fmt.Sprintf("failed to %s shortcut '%s'", e.Op, e.Name)
	switch {
	case e.Err == nil:
		return prefix + ": " + e.Kind.Error()
	case errors.Is(e.Err, e.Kind):
		return prefix + ": " + e.Err.Error()
	default:
		return prefix + ": " + e.Kind.Error() + ": " + e.Err.Error()
	}
}

// Unwrap exposes both the kind and the underlying cause.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
