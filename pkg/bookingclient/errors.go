package bookingclient

import (
	"errors"
	"fmt"
)

// Kind classifies a failed client call.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthenticationRequired
	KindInternal
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthenticationRequired:
		return "authentication_required"
	case KindInternal:
		return "internal"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

const (
	msgSelectionIncomplete = "Please select a date and time slot before booking."
	msgLoginRequired       = "Please log in before booking."
	msgDateInvalid         = "The selected date does not exist."
	msgNetwork             = "Could not reach the booking server."
	msgInternal            = "Failed to book appointment."
)

// Error is returned by every Client method that fails.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
