package errors

import (
	"runtime"
)

// StackTrace is a stack of program counters, the most recent call first.
type StackTrace []uintptr

type stackTracer interface {
	StackTrace() StackTrace
}

func callers() StackTrace {
	const depth = 16
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return StackTrace(pcs[0:n])
}

// chain bundles several errors into one value, so Unwrap can return them all.
type chain []error

func (c chain) Error() string {
	if len(c) == 0 {
		return ""
	}
	return c[0].Error()
}

func (c chain) Unwrap() []error {
	return c
}
