package upstream

import "errors"

// Kind tags a normalized upstream failure.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNetwork    Kind = "network"
	KindServer     Kind = "server"
	KindUnknown    Kind = "unknown"
)

// Error is the single error shape the rest of the dashboard sees for a
// failed upstream call: a tag plus a human-readable message resolved from
// the server payload, the transport error, or a per-call fallback.
type Error struct {
	Kind    Kind
	Message string
	// Status is the HTTP status for server errors, zero otherwise.
	Status int
}

func (e *Error) Error() string { return e.Message }

// ErrKind extracts the kind from any error chain containing an *Error.
// Errors from outside the client read as unknown.
func ErrKind(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return KindUnknown
}

// Message resolves the human-readable message for an error, falling back
// to err.Error() for foreign errors and to fallback for nil-message cases.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var ue *Error
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

func serverError(status int, message, fallback string) *Error {
	if message == "" {
		message = fallback
	}
	return &Error{Kind: KindServer, Message: message, Status: status}
}

func networkError(err error, fallback string) *Error {
	message := fallback
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &Error{Kind: KindNetwork, Message: message}
}
