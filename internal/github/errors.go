package github

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a client failure into a stable, coarse-grained category.
type Kind int

// Failure kinds returned by the client.
const (
	KindConnection Kind = iota + 1
	KindAuthentication
	KindRequest
	KindDecoding
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection failure"
	case KindAuthentication:
		return "authentication failure"
	case KindRequest:
		return "request failure"
	case KindDecoding:
		return "decoding failure"
	default:
		return "unknown failure"
	}
}

// Sentinel errors usable with errors.Is to match the kind of an *Error.
var (
	ErrConnectionFailure     = errors.New("connection failure")
	ErrAuthenticationFailure = errors.New("authentication failure")
	ErrRequestFailure        = errors.New("request failure")
	ErrDecodingFailure       = errors.New("decoding failure")
)

// ErrInvalidArgument is returned when an operation is called with missing
// required input. No request is sent in that case.
var ErrInvalidArgument = errors.New("invalid argument")

// connectionMessage is the fixed message reported for every transport failure.
const connectionMessage = "cannot connect to server"

// Error is the failure type returned by every Client operation.
//
// Message carries the remote-provided message for request and authentication
// failures. Err keeps the underlying cause (transport error, JSON error) for
// diagnostics.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind != KindRequest && e.Kind != KindAuthentication {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel matching the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrConnectionFailure:
		return e.Kind == KindConnection
	case ErrAuthenticationFailure:
		return e.Kind == KindAuthentication
	case ErrRequestFailure:
		return e.Kind == KindRequest
	case ErrDecodingFailure:
		return e.Kind == KindDecoding
	}
	return false
}

// KindOf returns the kind of err, or zero if err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsNotFound reports whether err is a request failure with status 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindRequest && apiErr.StatusCode == http.StatusNotFound
}

func connectionError(err error) *Error {
	return &Error{Kind: KindConnection, Message: connectionMessage, Err: err}
}

func decodingError(message string, err error) *Error {
	return &Error{Kind: KindDecoding, Message: message, Err: err}
}
