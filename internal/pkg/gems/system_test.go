package gems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem/aferofs"
	"github.com/enersys/pypsa2gems/internal/pkg/log"
)

func TestNewSystem(t *testing.T) {
	t.Parallel()

	s := NewSystem("my_network")
	assert.Equal(t, "my_network", s.ID)
	assert.Equal(t, ModelLibraryID, s.ModelLibraries)
	assert.Empty(t, s.Components)
	assert.Empty(t, s.Connections)
	assert.Empty(t, s.Nodes)

	// Unnamed networks fall back to the fixed identifier.
	assert.Equal(t, DefaultSystemID, NewSystem("").ID)
}

func TestSystemSaveEmpty(t *testing.T) {
	t.Parallel()
	fs := aferofs.NewMemoryFs(log.NewNopLogger())

	require.NoError(t, NewSystem("").Save(fs, "study"))

	file, err := fs.ReadFile(filesystem.NewFileDef("study/" + SystemFile))
	require.NoError(t, err)
	expected := `system:
    id: pypsa2gems
    model-libraries: pypsa_models
    components: []
    connections: []
    nodes: []
`
	assert.Equal(t, expected, file.Content)
}

func TestSystemSave(t *testing.T) {
	t.Parallel()
	fs := aferofs.NewMemoryFs(log.NewNopLogger())

	s := NewSystem("demo")
	s.Nodes = append(s.Nodes, Component{
		ID:         "bus1",
		Model:      "pypsa_models.bus",
		Parameters: []ComponentParameter{},
	})
	s.Components = append(s.Components, Component{
		ID:    "load_load1",
		Model: "pypsa_models.load",
		Parameters: []ComponentParameter{
			{ID: "p_set", TimeDependent: true, ScenarioDependent: false, Value: "demo_load_load1_p_set"},
			{ID: "sign", TimeDependent: false, ScenarioDependent: false, Value: -1.0},
		},
	})
	s.Connections = append(s.Connections, Connection{
		Component1: "bus1",
		Port1:      "p_balance_port",
		Component2: "load_load1",
		Port2:      "p_balance_port",
	})

	require.NoError(t, s.Save(fs, "study"))

	file, err := fs.ReadFile(filesystem.NewFileDef("study/" + SystemFile))
	require.NoError(t, err)
	expected := `system:
    id: demo
    model-libraries: pypsa_models
    components:
        - id: load_load1
          model: pypsa_models.load
          parameters:
              - id: p_set
                time-dependent: true
                scenario-dependent: false
                value: demo_load_load1_p_set
              - id: sign
                time-dependent: false
                scenario-dependent: false
                value: -1
    connections:
        - component1: bus1
          port1: p_balance_port
          component2: load_load1
          port2: p_balance_port
    nodes:
        - id: bus1
          model: pypsa_models.bus
          parameters: []
`
	assert.Equal(t, expected, file.Content)
}
