// nolint: forbidigo
package aferofs

import (
	"path/filepath"

	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem/aferofs/localfs"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem/aferofs/memoryfs"
	"github.com/enersys/pypsa2gems/internal/pkg/log"
	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// NewLocalFs creates a filesystem abstraction rooted at the basePath directory.
func NewLocalFs(logger log.Logger, basePath string) (filesystem.Fs, error) {
	basePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, errors.Errorf(`cannot resolve path "%s": %w`, basePath, err)
	}
	return New(logger, localfs.New(basePath)), nil
}

// NewMemoryFs creates an in-memory filesystem abstraction, for tests.
func NewMemoryFs(logger log.Logger) filesystem.Fs {
	return New(logger, memoryfs.New())
}
