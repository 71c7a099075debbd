package registry

import (
	"fmt"
)

// DuplicateRegistrationError signals that the same category was registered
// twice. A programming error, not bad input.
type DuplicateRegistrationError struct {
	Category string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf(`category "%s" is already registered`, e.Category)
}

// UnsupportedConstraintError signals a global constraint whose
// (attribute, sense) combination has no target model.
type UnsupportedConstraintError struct {
	Constraint       string
	CarrierAttribute string
	Sense            string
}

func (e *UnsupportedConstraintError) Error() string {
	return fmt.Sprintf(
		`global constraint "%s" is not supported: no model for attribute "%s" with sense "%s"`,
		e.Constraint, e.CarrierAttribute, e.Sense,
	)
}

// MissingMappingError signals a mapped attribute absent from the element
// table. A registry/category mismatch, not bad input data.
type MissingMappingError struct {
	Category string
	Attr     string
}

func (e *MissingMappingError) Error() string {
	return fmt.Sprintf(`parameter "%s" is not available in the "%s" element table`, e.Attr, e.Category)
}
