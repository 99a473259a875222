package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an action was rejected.
type ErrorKind string

const (
	UnknownPlayer       ErrorKind = "UnknownPlayer"
	NotYourTurn         ErrorKind = "NotYourTurn"
	InvalidTarget       ErrorKind = "InvalidTarget"
	RuleViolation       ErrorKind = "RuleViolation"
	TimingViolation     ErrorKind = "TimingViolation"
	ConcurrencyConflict ErrorKind = "ConcurrencyConflict"
)

// Error is a rejected action. Detail is safe to show to the acting player.
type Error struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap returns the underlying rule error, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Kind sentinels for use with errors.Is.
var (
	ErrUnknownPlayer       = &Error{Kind: UnknownPlayer}
	ErrNotYourTurn         = &Error{Kind: NotYourTurn}
	ErrInvalidTarget       = &Error{Kind: InvalidTarget}
	ErrRuleViolation       = &Error{Kind: RuleViolation}
	ErrTimingViolation     = &Error{Kind: TimingViolation}
	ErrConcurrencyConflict = &Error{Kind: ConcurrencyConflict}
)

// NewError creates a rejection of the given kind.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap creates a rejection of the given kind caused by err.
func Wrap(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Detail: cause.Error(), Cause: cause}
}

// KindOf returns the kind of err, or "" if err is not a rejection.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func invalidTarget(format string, args ...interface{}) error {
	return NewError(InvalidTarget, format, args...)
}

func ruleViolation(format string, args ...interface{}) error {
	return NewError(RuleViolation, format, args...)
}
