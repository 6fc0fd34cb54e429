package scheduling

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the scheduling core can report. Handlers map
// kinds to HTTP statuses; the core never returns an unclassified error.
type Kind string

const (
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindInvalidInput Kind = "invalid_input"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// Error carries the kind, a human-readable detail, and, for conflicts, the
// windows the request collided with so clients can see what was on offer.
type Error struct {
	Kind      Kind
	Message   string
	Conflicts []Window
	cause     error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func invalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func conflict(msg string, windows []Window) error {
	return &Error{Kind: KindConflict, Message: msg, Conflicts: windows}
}

func internal(cause error, format string, args ...any) error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), cause: cause}
}

// KindOf extracts the kind from any error returned by the core. Unclassified
// errors report KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
