// Package apperr classifies failures into the small set of kinds the
// rest of the service branches on.
package apperr

import (
	"context"
	"errors"
	"fmt"
)

// Kind identifies a failure category.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindMalformed
	KindValidation
	KindNetwork
	KindUpstreamStatus
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindMalformed:
		return "malformed"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindUpstreamStatus:
		return "upstream_status"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error carries a kind alongside the wrapped cause. Status is only set
// for KindUpstreamStatus and holds the upstream HTTP status code.
type Error struct {
	Kind   Kind
	Status int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error without a cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Upstream creates an error for a non-2xx provider response.
func Upstream(status int, msg string) *Error {
	return &Error{Kind: KindUpstreamStatus, Status: status, Msg: msg}
}

// KindOf reports the kind of err. Context cancellation and deadline
// errors classify as KindCancelled even when unwrapped.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCancelled
	}
	return KindUnknown
}

// Is reports whether err classifies as the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
