package preprocess

import (
	"fmt"
)

// StructuralViolationError signals that the source network breaks one of
// the documented structural preconditions. Fatal, surfaced verbatim.
type StructuralViolationError struct {
	message string
}

func violationf(format string, a ...any) *StructuralViolationError {
	return &StructuralViolationError{message: fmt.Sprintf(format, a...)}
}

func (e *StructuralViolationError) Error() string {
	return e.message
}
