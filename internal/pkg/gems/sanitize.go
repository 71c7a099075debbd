package gems

import (
	"math"

	"github.com/spf13/cast"
)

// MaxFloat is the finite sentinel replacing infinite values in the study,
// the solver does not accept infinities.
const MaxFloat = 1e20

// SanitizeFloat normalizes a float for the study: NaN becomes 0,
// infinities become ±MaxFloat. The operation is idempotent.
func SanitizeFloat(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 1):
		return MaxFloat
	case math.IsInf(f, -1):
		return -MaxFloat
	}
	return f
}

// Sanitize normalizes a dynamically typed cell value for the study:
// nil becomes 0, numbers and booleans are coerced to a sanitized float,
// strings pass through unchanged.
func Sanitize(value any) any {
	switch v := value.(type) {
	case nil:
		return 0.0
	case string:
		return v
	case float64:
		return SanitizeFloat(v)
	default:
		return SanitizeFloat(cast.ToFloat64(v))
	}
}
