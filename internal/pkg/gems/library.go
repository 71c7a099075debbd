package gems

import (
	_ "embed"

	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
)

//go:embed pypsa_models.yml
var modelLibrary string

//go:embed optim-config.yml
var optimConfig string

// WriteModelLibrary copies the embedded model library into the study.
func WriteModelLibrary(fs filesystem.Fs, studyDir string) error {
	path := filesystem.Join(studyDir, ModelLibraryFile)
	return fs.WriteFile(filesystem.NewRawFile(path, modelLibrary).SetDescription("model library"))
}

// WriteOptimConfig copies the embedded optimization configuration into the
// study. Only scenario-aware studies carry one.
func WriteOptimConfig(fs filesystem.Fs, studyDir string) error {
	path := filesystem.Join(studyDir, OptimConfigFile)
	return fs.WriteFile(filesystem.NewRawFile(path, optimConfig).SetDescription("optimization configuration"))
}
