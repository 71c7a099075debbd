// Package naming derives target component identifiers from source element
// names and guarantees their uniqueness across a translation run.
package naming

import (
	"strings"
)

// Normalize replaces characters that are not allowed in a target identifier.
// Spaces are replaced by underscores, everything else is kept as-is.
func Normalize(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// TypeToken converts a plural category name to the singular token used as
// identifier prefix, e.g. "generators" -> "generator".
func TypeToken(category string) string {
	return strings.TrimSuffix(category, "s")
}

// ElementID derives the target identifier of an element from its category
// and source name, e.g. ("generators", "gas plant") -> "generator_gas_plant".
func ElementID(category, name string) string {
	return TypeToken(category) + "_" + Normalize(name)
}
