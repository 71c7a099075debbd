// Package gems models the target study: the declarative system description,
// the solver parameters and the fixed study artifacts.
package gems

import (
	"gopkg.in/yaml.v3"

	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// ModelLibraryID is the identifier of the embedded model library, model
// references are "<library>.<model>".
const ModelLibraryID = "pypsa_models"

// Study layout, relative to the study directory.
const (
	SystemFile       = "systems/input/system.yml"
	ParametersFile   = "systems/parameters.yml"
	SeriesDir        = "systems/input/data-series"
	ModelLibraryFile = "systems/input/model-libraries/pypsa_models.yml"
	OptimConfigFile  = "systems/input/optim-config.yml"
	DefaultSystemID  = "pypsa2gems"
)

// System is the declarative description of one study: all components,
// their port connections and the system nodes.
type System struct {
	ID             string       `yaml:"id"`
	ModelLibraries string       `yaml:"model-libraries"`
	Components     []Component  `yaml:"components"`
	Connections    []Connection `yaml:"connections"`
	Nodes          []Component  `yaml:"nodes"`
}

// Component is one component or node of the system, the model reference
// has the "<library>.<model>" form.
type Component struct {
	ID         string               `yaml:"id"`
	Model      string               `yaml:"model"`
	Parameters []ComponentParameter `yaml:"parameters"`
}

// ComponentParameter is one parameter value: a constant, or a reference to
// a named data series when time or scenario dependent.
type ComponentParameter struct {
	ID                string `yaml:"id"`
	TimeDependent     bool   `yaml:"time-dependent"`
	ScenarioDependent bool   `yaml:"scenario-dependent"`
	Value             any    `yaml:"value"`
}

// Connection links two component ports, it is undirected.
type Connection struct {
	Component1 string `yaml:"component1"`
	Port1      string `yaml:"port1"`
	Component2 string `yaml:"component2"`
	Port2      string `yaml:"port2"`
}

// NewSystem creates a system with the given identifier, or DefaultSystemID
// when the source network is unnamed.
func NewSystem(id string) *System {
	if id == "" {
		id = DefaultSystemID
	}
	return &System{
		ID:             id,
		ModelLibraries: ModelLibraryID,
		Components:     []Component{},
		Connections:    []Connection{},
		Nodes:          []Component{},
	}
}

// Save writes systems/input/system.yml under the study directory.
func (s *System) Save(fs filesystem.Fs, studyDir string) error {
	doc := struct {
		System *System `yaml:"system"`
	}{System: s}
	content, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Errorf(`cannot marshal system "%s": %w`, s.ID, err)
	}
	path := filesystem.Join(studyDir, SystemFile)
	return fs.WriteFile(filesystem.NewRawFile(path, string(content)).SetDescription("system"))
}
