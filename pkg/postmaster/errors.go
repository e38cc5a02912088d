package postmaster

import (
	"errors"
	"fmt"
)

// Kind classifies an API client error.
type Kind string

const (
	// KindInvalidArgument indicates a field name rejected by an entity whitelist
	// or an otherwise unusable argument, detected before any network I/O.
	KindInvalidArgument Kind = "invalid_argument"

	// KindTransport indicates a non-2xx HTTP response from the API.
	KindTransport Kind = "transport"

	// KindNetwork indicates a connection-level failure (timeout, refused, DNS)
	// with no HTTP response available.
	KindNetwork Kind = "network"

	// KindDecode indicates a 2xx response whose body is not valid JSON.
	KindDecode Kind = "decode"
)

// Error represents an error from the Postmaster API client.
type Error struct {
	Kind       Kind
	StatusCode int    // HTTP status, 0 when no response was received
	Message    string
	Method     string // HTTP method of the failed request, if any
	Path       string // request path, for diagnostics
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Method != "" {
		if e.Cause != nil {
			return fmt.Sprintf("postmaster: %s %s: %s (%s): %v", e.Method, e.Path, e.Message, e.Kind, e.Cause)
		}
		return fmt.Sprintf("postmaster: %s %s: %s (%s)", e.Method, e.Path, e.Message, e.Kind)
	}
	if e.Cause != nil {
		return fmt.Sprintf("postmaster: %s (%s): %v", e.Message, e.Kind, e.Cause)
	}
	return fmt.Sprintf("postmaster: %s (%s)", e.Message, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for Error; two errors match when their kinds match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError creates a new Error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// WithStatusCode attaches an HTTP status code to the error.
func (e *Error) WithStatusCode(code int) *Error {
	e.StatusCode = code
	return e
}

// WithCause attaches an underlying cause to the error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithRequest records the method and path of the failed request.
func (e *Error) WithRequest(method, path string) *Error {
	e.Method = method
	e.Path = path
	return e
}

// Sentinel errors for argument validation shared across entity types.
var (
	// ErrMissingField indicates a required field was not supplied.
	ErrMissingField = errors.New("missing required field")

	// ErrNoID indicates an operation that needs a server-assigned identifier
	// was called on a record that has none.
	ErrNoID = errors.New("record has no id")

	// ErrUnknownField indicates a field outside an entity's whitelist.
	ErrUnknownField = errors.New("unknown field")
)

// IsInvalidArgument reports whether err is a client-side argument error.
func IsInvalidArgument(err error) bool { return hasKind(err, KindInvalidArgument) }

// IsTransport reports whether err is a non-2xx API response.
func IsTransport(err error) bool { return hasKind(err, KindTransport) }

// IsNetwork reports whether err is a connection-level failure.
func IsNetwork(err error) bool { return hasKind(err, KindNetwork) }

// IsDecode reports whether err is a malformed-response failure.
func IsDecode(err error) bool { return hasKind(err, KindDecode) }

func hasKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// StatusCode extracts the HTTP status from err, or 0 when none is recorded.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
