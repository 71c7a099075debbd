// nolint: forbidigo
package aferofs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/log"
	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// backend is one of the supported afero filesystems, see the localfs and memoryfs packages.
type backend interface {
	afero.Fs
	Name() string
	BasePath() string
	Walk(root string, walkFn filepath.WalkFunc) error
}

// Fs implements the filesystem.Fs interface on top of an afero backend.
type Fs struct {
	logger  log.Logger
	backend backend
	utils   *afero.Afero
}

func New(logger log.Logger, b backend) *Fs {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Fs{logger: logger, backend: b, utils: &afero.Afero{Fs: b}}
}

// Backend returns the underlying afero filesystem.
func (f *Fs) Backend() afero.Fs {
	return f.backend
}

// SetLogger replaces the logger, the filesystem can be created before the final logger.
func (f *Fs) SetLogger(logger log.Logger) {
	f.logger = logger
}

func (f *Fs) Name() string {
	return f.backend.Name()
}

func (f *Fs) BasePath() string {
	return f.backend.BasePath()
}

func (f *Fs) Walk(root string, walkFn filepath.WalkFunc) error {
	return f.backend.Walk(root, walkFn)
}

func (f *Fs) Glob(pattern string) (matches []string, err error) {
	return afero.Glob(f.backend, pattern)
}

func (f *Fs) Stat(path string) (os.FileInfo, error) {
	return f.backend.Stat(path)
}

func (f *Fs) ReadDir(path string) ([]os.FileInfo, error) {
	return f.utils.ReadDir(path)
}

func (f *Fs) Mkdir(path string) error {
	if err := f.utils.MkdirAll(path, 0o755); err != nil {
		return errors.Errorf(`cannot create directory "%s": %w`, path, err)
	}
	f.logger.Debugf(`Created directory "%s"`, path)
	return nil
}

func (f *Fs) Exists(path string) bool {
	if _, err := f.backend.Stat(path); err == nil {
		return true
	}
	return false
}

func (f *Fs) IsFile(path string) bool {
	if info, err := f.backend.Stat(path); err == nil {
		return !info.IsDir()
	}
	return false
}

func (f *Fs) IsDir(path string) bool {
	if info, err := f.backend.Stat(path); err == nil {
		return info.IsDir()
	}
	return false
}

func (f *Fs) Open(name string) (afero.File, error) {
	return f.backend.Open(name)
}

// Copy copies a file or a directory, the destination must not exist.
func (f *Fs) Copy(src, dst string) error {
	if f.Exists(dst) {
		return errors.Errorf(`cannot copy "%s" -> "%s": destination exists`, src, dst)
	}
	if err := CopyFs2Fs(f, src, f, dst); err != nil {
		return errors.Errorf(`cannot copy "%s" -> "%s": %w`, src, dst, err)
	}
	f.logger.Debugf(`Copied "%s" -> "%s"`, src, dst)
	return nil
}

func (f *Fs) Remove(path string) error {
	if err := f.backend.RemoveAll(path); err != nil {
		return errors.Errorf(`cannot remove "%s": %w`, path, err)
	}
	f.logger.Debugf(`Removed "%s"`, path)
	return nil
}

func (f *Fs) ReadFile(def *filesystem.FileDef) (*filesystem.RawFile, error) {
	path, desc := def.Path(), def.Description()
	fileDesc := strings.TrimSpace(desc + " file")
	content, err := f.utils.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf(`missing %s "%s"`, fileDesc, path)
		}
		return nil, errors.Errorf(`cannot read %s "%s": %w`, fileDesc, path, err)
	}

	f.logger.Debugf(`Loaded "%s"`, path)
	return filesystem.NewRawFile(path, string(content)).SetDescription(desc), nil
}

func (f *Fs) WriteFile(file *filesystem.RawFile) error {
	path, desc := file.Path(), file.Description()
	fileDesc := strings.TrimSpace(desc + " file")

	// Create the directory
	if dir := filesystem.Dir(path); dir != "." && !f.IsDir(dir) {
		if err := f.Mkdir(dir); err != nil {
			return err
		}
	}

	if err := f.utils.WriteFile(path, []byte(file.Content), 0o644); err != nil {
		return errors.Errorf(`cannot write %s "%s": %w`, fileDesc, path, err)
	}

	f.logger.Debugf(`Saved "%s"`, path)
	return nil
}
