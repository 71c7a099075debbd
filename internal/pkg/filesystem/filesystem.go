// nolint: forbidigo
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/enersys/pypsa2gems/internal/pkg/log"
	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// Fs - filesystem abstraction, all paths are relative to the base path.
type Fs interface {
	Name() string // name of the used implementation, for example local, memory
	BasePath() string
	SetLogger(logger log.Logger) // the filesystem can be created before the final logger
	Walk(root string, walkFn filepath.WalkFunc) error
	Glob(pattern string) (matches []string, err error)
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
	Mkdir(path string) error
	Exists(path string) bool
	IsFile(path string) bool
	IsDir(path string) bool
	Open(name string) (afero.File, error)
	Copy(src, dst string) error
	Remove(path string) error
	ReadFile(def *FileDef) (*RawFile, error)
	WriteFile(file *RawFile) error
}

// Factory creates a filesystem abstraction rooted at the working directory.
type Factory func(logger log.Logger, workingDir string) (Fs, error)

// Rel returns relative path.
func Rel(base, path string) string {
	relPath, err := filepath.Rel(base, path)
	if err != nil {
		panic(errors.Errorf(`cannot get relative path, base="%s", path="%s"`, base, path))
	}
	return relPath
}

// Join joins any number of path elements into a single path.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Split splits path immediately following the final Separator.
func Split(path string) (dir, file string) {
	return filepath.Split(path)
}

// Dir returns all but the last element of path, typically the path's directory.
func Dir(path string) string {
	return filepath.Dir(path)
}

// Base returns the last element of path.
func Base(path string) string {
	return filepath.Base(path)
}

// Match reports whether name matches the shell file name pattern.
func Match(pattern, name string) (matched bool, err error) {
	return filepath.Match(pattern, name)
}

// FromSlash returns the result of replacing each slash character in path with the OS separator.
func FromSlash(path string) string {
	return filepath.FromSlash(path)
}

// ToSlash returns the result of replacing each OS separator in path with a slash character.
func ToSlash(path string) string {
	return filepath.ToSlash(path)
}
