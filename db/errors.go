package db

import "fmt"

// ErrorKind classifies every failure the store layer can produce. Handlers
// and middleware dispatch on the kind instead of inspecting driver errors.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindMalformedID
	KindValidation
	KindNotFound
)

// Error is the only error type returned by NoteStore and UserStore.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// MalformedID reports a path parameter that does not parse as an ObjectID.
func MalformedID(id string) error {
	return &Error{Kind: KindMalformedID, Message: fmt.Sprintf("malformed id %q", id)}
}

// Validation reports a schema constraint violation. The message is shown to
// clients verbatim.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound reports a read by valid-format id with no matching document.
func NotFound(resource, id string) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// Internal wraps an unexpected driver failure.
func Internal(message string, cause error) error {
	return &Error{Kind: KindInternal, Message: message, Cause: cause}
}
