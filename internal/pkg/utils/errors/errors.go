// Package errors provides errors with stack trace, multi error and nested error,
// and a configurable formatter for human-readable CLI output.
package errors

import (
	stderrors "errors"
	"fmt"
)

// New returns a new error with a stack trace.
func New(msg string) error {
	return &withStack{err: stderrors.New(msg), trace: callers()}
}

// Errorf formats a new error, the %w verb is supported.
func Errorf(format string, a ...any) error {
	return &withStack{err: fmt.Errorf(format, a...), trace: callers()}
}

// Wrap returns an error with a new message, the original error is available via Unwrap.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, err: err, trace: callers()}
}

// Wrapf returns an error with a new formatted message, the original error is available via Unwrap.
func Wrapf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, a...), err: err, trace: callers()}
}

// WithStack attaches the caller stack trace to the error, the message is unchanged.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &withStack{err: err, trace: callers()}
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}

func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

type withStack struct {
	err   error
	trace StackTrace
}

func (e *withStack) Error() string {
	return e.err.Error()
}

func (e *withStack) Unwrap() error {
	return e.err
}

func (e *withStack) StackTrace() StackTrace {
	return e.trace
}

type wrappedError struct {
	msg   string
	err   error
	trace StackTrace
}

func (e *wrappedError) Error() string {
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

func (e *wrappedError) StackTrace() StackTrace {
	return e.trace
}
