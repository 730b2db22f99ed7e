package grammar

import (
	"errors"
	"fmt"
)

// Kind classifies a grammar check failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindTextTooLong
	KindConnection
	KindTimeout
	KindResponse
	KindInvalidResponse
	KindModelNotAvailable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindTextTooLong:
		return "text_too_long"
	case KindConnection:
		return "connection"
	case KindTimeout:
		return "timeout"
	case KindResponse:
		return "response"
	case KindInvalidResponse:
		return "invalid_response"
	case KindModelNotAvailable:
		return "model_not_available"
	default:
		return "unknown"
	}
}

// Error is the single error type produced by the grammar pipeline.
// StatusCode is only set for KindResponse.
type Error struct {
	Kind       Kind
	StatusCode int
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an *Error of the given kind with a formatted message.
// A %w verb in format is also recorded as the wrapped cause.
func Errorf(kind Kind, format string, args ...any) *Error {
	wrapped := fmt.Errorf(format, args...)
	return &Error{Kind: kind, Msg: wrapped.Error(), Err: errors.Unwrap(wrapped)}
}

// KindOf reports the Kind of err. Errors that are not *Error report
// KindUnknown together with ok=false.
func KindOf(err error) (kind Kind, ok bool) {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return KindUnknown, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
