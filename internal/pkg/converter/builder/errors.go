package builder

import (
	"fmt"
)

// MissingReferenceError signals an element whose bus reference cell is
// empty, the connection target cannot be derived.
type MissingReferenceError struct {
	Element string
	Column  string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf(`element "%s" has an empty "%s" reference`, e.Element, e.Column)
}
