package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so the transport layer can pick a status code.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindBusinessRule
	KindUnauthorized
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindBusinessRule:
		return "business_rule"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unexpected"
	}
}

// Error is the typed error returned by domain operations. Message is safe to show
// to API clients.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind == KindUnexpected {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Rule violations shared by the store and the service.
var (
	ErrInsufficientBudget = &Error{Kind: KindBusinessRule, Message: "insufficient budget"}
	ErrPurchaseDepleted   = &Error{Kind: KindBusinessRule, Message: "no remaining stock in the purchase"}
	ErrInsufficientStock  = &Error{Kind: KindBusinessRule, Message: "not enough stock in the purchase"}
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
	ErrAmountOutOfRange   = &Error{Kind: KindValidation, Message: "amount is out of range"}
)

func newError(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validationf reports bad or missing input.
func Validationf(format string, args ...any) error {
	return newError(KindValidation, format, args...)
}

// NotFoundf reports a referenced entity that does not exist.
func NotFoundf(format string, args ...any) error {
	return newError(KindNotFound, format, args...)
}

// Conflictf reports a uniqueness or referential conflict.
func Conflictf(format string, args ...any) error {
	return newError(KindConflict, format, args...)
}

// BusinessRulef reports a violated business rule.
func BusinessRulef(format string, args ...any) error {
	return newError(KindBusinessRule, format, args...)
}

// Unavailable wraps a transient datastore failure the caller may retry.
func Unavailable(msg string, err error) error {
	return &Error{Kind: KindUnavailable, Message: msg, Err: err}
}

// Unexpected wraps an internal failure.
func Unexpected(msg string, err error) error {
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnexpected.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
