package errors

type MultiError interface {
	error
	Len() int
	ErrorOrNil() error
	StackTrace() StackTrace
	Append(errs ...error)
	AppendNested(err error) NestedError
	AppendWithPrefix(err error, prefix string)
	AppendWithPrefixf(err error, format string, a ...any)
	WrappedErrors() []error
	Unwrap() []error
}

type multiErrorGetter interface {
	WrappedErrors() []error
}

type multiError struct {
	errs  []error
	trace StackTrace
}

func NewMultiError(errs ...error) MultiError {
	e := &multiError{trace: callers()}
	e.Append(errs...)
	return e
}

func (e *multiError) Error() string {
	return Format(e)
}

func (e *multiError) Len() int {
	return len(e.errs)
}

// ErrorOrNil returns nil if no error has been appended.
func (e *multiError) ErrorOrNil() error {
	if len(e.errs) == 0 {
		return nil
	}
	return e
}

func (e *multiError) StackTrace() StackTrace {
	return e.trace
}

// Append adds errors to the list, nil values are skipped, MultiError values are flattened.
func (e *multiError) Append(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		if v, ok := err.(MultiError); ok { // nolint: errorlint
			e.errs = append(e.errs, v.WrappedErrors()...)
		} else {
			e.errs = append(e.errs, err)
		}
	}
}

// AppendNested adds a nested error with the main message, sub errors can be appended to the returned value.
func (e *multiError) AppendNested(err error) NestedError {
	nested := NewNestedError(err)
	e.errs = append(e.errs, nested)
	return nested
}

func (e *multiError) AppendWithPrefix(err error, prefix string) {
	e.errs = append(e.errs, PrefixError(err, prefix))
}

func (e *multiError) AppendWithPrefixf(err error, format string, a ...any) {
	e.errs = append(e.errs, PrefixErrorf(err, format, a...))
}

func (e *multiError) WrappedErrors() []error {
	return e.errs
}

func (e *multiError) Unwrap() []error {
	return e.errs
}
