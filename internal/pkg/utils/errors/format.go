package errors

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"
)

type FormatConfig struct {
	// WithStack includes the error call site in the output.
	WithStack bool
	// WithUnwrap includes wrapped errors in the output.
	WithUnwrap bool
	// AsSentences starts each message with an upper-case letter and ends it with a dot.
	AsSentences bool
}

type FormatOption func(*FormatConfig)

// FormatWithStack includes call sites and wrapped errors in the output, for debug logs.
func FormatWithStack() FormatOption {
	return func(c *FormatConfig) {
		c.WithStack = true
		c.WithUnwrap = true
	}
}

func FormatWithUnwrap() FormatOption {
	return func(c *FormatConfig) {
		c.WithUnwrap = true
	}
}

func FormatAsSentences() FormatOption {
	return func(c *FormatConfig) {
		c.AsSentences = true
	}
}

// MessageFormatter formats each error message, see defaultMessageFormatter.
type MessageFormatter func(msg string, trace StackTrace, config FormatConfig) string

// PrefixFormatter formats a prefix followed by a list of errors, see defaultPrefixFormatter.
type PrefixFormatter func(prefix string) string

// Format converts the error to a human-readable string.
// Multi and nested errors are rendered as an indented bullet list.
func Format(err error, opts ...FormatOption) string {
	w := NewWriter(defaultMessageFormatter, defaultPrefixFormatter, opts...)
	w.WriteError(err)
	return w.String()
}

func defaultMessageFormatter(msg string, trace StackTrace, config FormatConfig) string {
	if config.AsSentences {
		msg = firstToUpper(msg)
		if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, ":") {
			msg += "."
		}
	}
	if config.WithStack && len(trace) > 0 {
		frame := trace[0]
		fn := runtime.FuncForPC(frame)
		file, line := fn.FileLine(frame)
		msg = fmt.Sprintf("%s [%s:%d]", msg, file, line)
	}
	return msg
}

func defaultPrefixFormatter(prefix string) string {
	return strings.TrimRight(prefix, ".,:") + ":"
}

func firstToUpper(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
