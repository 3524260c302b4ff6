package domain

import "errors"

// Kind classifies an error so the transport layer can map it to a status
// code without inspecting messages.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
)

// Error is the single error type raised by the core. It carries a kind, a
// human-readable message, and optional per-field details.
type Error struct {
	Kind    Kind
	Message string
	Details []string
}

func (e *Error) Error() string { return e.Message }

// NewValidation reports malformed input caught at an aggregate boundary.
func NewValidation(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

// NewConflict reports a uniqueness violation, naming the conflicting field.
func NewConflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewUnauthorized reports bad credentials or an invalid token. The
// underlying cause is never included in the message.
func NewUnauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewNotFound reports a referenced entity with no live record.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf classifies any error. Errors not raised by the core are Unexpected.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}
