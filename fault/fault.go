package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error reported back to the caller of a user action
type Kind int

const (
	Unknown Kind = iota
	Validation
	NotAuthorized
	InvalidTransition
	Conflict
	NotFound
	NotAvailable
	SelfAccept
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotAuthorized:
		return "not_authorized"
	case InvalidTransition:
		return "invalid_transition"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case NotAvailable:
		return "not_available"
	case SelfAccept:
		return "self_accept"
	default:
		return "unknown"
	}
}

// Error is a classified error with a human readable message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches kind and message to an underlying error
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Validationf(format string, args ...interface{}) *Error {
	return New(Validation, format, args...)
}

func NotAuthorizedf(format string, args ...interface{}) *Error {
	return New(NotAuthorized, format, args...)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return New(NotFound, format, args...)
}

func Conflictf(format string, args ...interface{}) *Error {
	return New(Conflict, format, args...)
}

func NotAvailablef(format string, args ...interface{}) *Error {
	return New(NotAvailable, format, args...)
}

// Transition reports an action that is not legal from the current status.
// required names the status the action needs.
func Transition(action, required string) *Error {
	return New(InvalidTransition, "cannot %s: request must be %s", action, required)
}

// KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the classified message of err, or err.Error() when it is
// not classified
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
