package series

import (
	"fmt"
)

// UnsupportedFormatError signals an unknown series file format name.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf(`series file format "%s" is not supported, use "csv" or "tsv"`, e.Format)
}
