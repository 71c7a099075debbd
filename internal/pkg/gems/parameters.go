package gems

import (
	"gopkg.in/yaml.v3"

	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// Solver parameter defaults.
const (
	DefaultSolver           = "highs"
	DefaultSolverParameters = "THREADS 1"
)

// ModelerParameters describes one solver run over the study's time axis,
// both time step bounds are inclusive and zero-based.
type ModelerParameters struct {
	Solver           string `yaml:"solver"`
	SolverLogs       bool   `yaml:"solver-logs"`
	SolverParameters string `yaml:"solver-parameters"`
	NoOutput         bool   `yaml:"no-output"`
	FirstTimeStep    int    `yaml:"first-time-step"`
	LastTimeStep     int    `yaml:"last-time-step"`
}

// NewModelerParameters creates solver parameters with the defaults,
// covering time steps 0..lastTimeStep.
func NewModelerParameters(lastTimeStep int) ModelerParameters {
	return ModelerParameters{
		Solver:           DefaultSolver,
		SolverLogs:       false,
		SolverParameters: DefaultSolverParameters,
		NoOutput:         false,
		FirstTimeStep:    0,
		LastTimeStep:     lastTimeStep,
	}
}

// Save writes systems/parameters.yml under the study directory.
func (p ModelerParameters) Save(fs filesystem.Fs, studyDir string) error {
	content, err := yaml.Marshal(&p)
	if err != nil {
		return errors.Errorf(`cannot marshal solver parameters: %w`, err)
	}
	path := filesystem.Join(studyDir, ParametersFile)
	return fs.WriteFile(filesystem.NewRawFile(path, string(content)).SetDescription("solver parameters"))
}
