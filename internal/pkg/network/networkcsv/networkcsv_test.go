package networkcsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem/aferofs"
	"github.com/enersys/pypsa2gems/internal/pkg/log"
	"github.com/enersys/pypsa2gems/internal/pkg/network"
)

func fixtureFs(t *testing.T, fixture string) filesystem.Fs {
	t.Helper()
	fs := aferofs.NewMemoryFs(log.NewNopLogger())
	require.NoError(t, aferofs.CopyFs2Fs(nil, filesystem.Join("testdata", fixture), fs, "in"))
	return fs
}

func TestLoadSimple(t *testing.T) {
	t.Parallel()
	fs := fixtureFs(t, "simple")

	net, err := Load(fs, "in")
	require.NoError(t, err)
	assert.Equal(t, "Simple_Network", net.Name())
	assert.Equal(t, []string{"0", "1", "2"}, net.Snapshots())
	assert.Equal(t, []float64{1, 1, 1}, net.Weightings())
	assert.False(t, net.HasScenarios())

	// Bus names are loaded verbatim, identity is resolved later
	assert.Equal(t, []network.ElementID{network.ID("bus 1")}, net.Table(network.CategoryBuses).IDs())

	gen, found := net.Table(network.CategoryGenerators).Row(network.ID("gen1"))
	require.True(t, found)
	assert.Equal(t, "bus 1", gen.String("bus"))
	assert.Equal(t, "gas", gen.String("carrier"))
	assert.Equal(t, 200.0, gen.Float("p_nom"))
	assert.Equal(t, 50.0, gen.Float("marginal_cost"))
	assert.False(t, gen.Bool("committable"))

	// Unset attributes fall back to the category defaults
	assert.Equal(t, 1.0, gen.Float("p_max_pu"))
	assert.False(t, gen.Bool("p_nom_extendable"))

	carrier, found := net.Table(network.CategoryCarriers).Row(network.ID("gas"))
	require.True(t, found)
	assert.Equal(t, 0.2, carrier.Float("co2_emissions"))

	// Time-indexed series
	generators, _ := net.Category(network.CategoryGenerators)
	series, found := generators.SeriesFor("p_max_pu")
	require.True(t, found)
	values, found := series.Column(network.ID("gen1"))
	require.True(t, found)
	assert.Equal(t, []float64{0.9, 0.8, 0.7}, values)

	// Absent category files mean empty categories
	assert.Equal(t, 0, net.Table(network.CategoryStores).Len())
}

func TestLoadScenarios(t *testing.T) {
	t.Parallel()
	fs := fixtureFs(t, "scenario")

	net, err := Load(fs, "in")
	require.NoError(t, err)
	assert.True(t, net.HasScenarios())
	assert.Equal(t, []network.Scenario{{Name: "low", Weight: 0.3}, {Name: "medium", Weight: 0.5}, {Name: "high", Weight: 0.2}}, net.Scenarios())

	// Element rows are fanned out scenario-major
	assert.Equal(t, []network.ElementID{
		network.ScenarioID("low", "gen1"),
		network.ScenarioID("medium", "gen1"),
		network.ScenarioID("high", "gen1"),
	}, net.Table(network.CategoryGenerators).IDs())

	// Series columns too, all replicas carry the loaded values
	generators, _ := net.Category(network.CategoryGenerators)
	series, found := generators.SeriesFor("p_max_pu")
	require.True(t, found)
	for _, scenario := range []string{"low", "medium", "high"} {
		values, found := series.Column(network.ScenarioID(scenario, "gen1"))
		require.True(t, found, scenario)
		assert.Equal(t, []float64{0.9, 0.8}, values, scenario)
	}
}

func TestLoadNameFallback(t *testing.T) {
	t.Parallel()
	fs := aferofs.NewMemoryFs(log.NewNopLogger())
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile("my_network/snapshots.csv", "name\n0\n")))

	net, err := Load(fs, "my_network")
	require.NoError(t, err)
	assert.Equal(t, "my_network", net.Name())
}

func TestLoadInvestmentPeriods(t *testing.T) {
	t.Parallel()
	fs := aferofs.NewMemoryFs(log.NewNopLogger())
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile("in/snapshots.csv", "name\n0\n")))
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile("in/investment_periods.csv", "period\n2030\n2040\n")))

	net, err := Load(fs, "in")
	require.NoError(t, err)
	assert.Equal(t, []string{"2030", "2040"}, net.InvestmentPeriods())
}

func TestLoadMissingSnapshots(t *testing.T) {
	t.Parallel()
	fs := aferofs.NewMemoryFs(log.NewNopLogger())
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile("in/network.csv", "name\ntest\n")))

	_, err := Load(fs, "in")
	require.Error(t, err)
	assert.Equal(t, `missing snapshots file "in/snapshots.csv"`, err.Error())
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		files    map[string]string
		expected string
	}{
		{
			name: "missing-name-column",
			files: map[string]string{
				"in/generators.csv": "id,p_nom\ngen1,200\n",
			},
			expected: `file "in/generators.csv" is missing "name" column`,
		},
		{
			name: "empty-element-name",
			files: map[string]string{
				"in/generators.csv": "name,p_nom\n,200\n",
			},
			expected: `file "in/generators.csv": line 2: element name cannot be empty`,
		},
		{
			name: "duplicate-element",
			files: map[string]string{
				"in/generators.csv": "name,p_nom\ngen1,200\ngen1,100\n",
			},
			expected: `file "in/generators.csv": line 3: duplicate element "gen1"`,
		},
		{
			name: "duplicate-column",
			files: map[string]string{
				"in/generators.csv": "name,p_nom,p_nom\ngen1,200,100\n",
			},
			expected: `file "in/generators.csv" has a duplicate column "p_nom"`,
		},
		{
			name: "series-unknown-element",
			files: map[string]string{
				"in/loads.csv":       "name,p_set\nload1,100\n",
				"in/loads-p_set.csv": "name,load2\n0,100\n1,110\n",
			},
			expected: `file "in/loads-p_set.csv": unknown element "load2"`,
		},
		{
			name: "series-row-count",
			files: map[string]string{
				"in/loads.csv":       "name,p_set\nload1,100\n",
				"in/loads-p_set.csv": "name,load1\n0,100\n",
			},
			expected: `file "in/loads-p_set.csv": expected 2 rows, one per snapshot, got 1`,
		},
		{
			name: "series-snapshot-mismatch",
			files: map[string]string{
				"in/loads.csv":       "name,p_set\nload1,100\n",
				"in/loads-p_set.csv": "name,load1\n0,100\n9,110\n",
			},
			expected: `file "in/loads-p_set.csv": line 3: snapshot "9" does not match "1"`,
		},
		{
			name: "series-invalid-value",
			files: map[string]string{
				"in/loads.csv":       "name,p_set\nload1,100\n",
				"in/loads-p_set.csv": "name,load1\n0,100\n1,abc\n",
			},
			expected: `file "in/loads-p_set.csv": line 3: invalid value "abc"`,
		},
		{
			name: "scenarios-invalid-weight",
			files: map[string]string{
				"in/scenarios.csv": "name,weight\nlow,heavy\n",
			},
			expected: `file "in/scenarios.csv": line 2: invalid weight "heavy"`,
		},
		{
			name: "scenarios-duplicate",
			files: map[string]string{
				"in/scenarios.csv": "name,weight\nlow,0.5\nlow,0.5\n",
			},
			expected: `file "in/scenarios.csv": duplicate scenario "low"`,
		},
		{
			name: "invalid-weighting",
			files: map[string]string{
				"in/snapshots.csv": "name,weighting\n0,a\n",
			},
			expected: `file "in/snapshots.csv": line 2: invalid weighting "a"`,
		},
		{
			name: "periods-missing-column",
			files: map[string]string{
				"in/investment_periods.csv": "name\n2030\n",
			},
			expected: `file "in/investment_periods.csv" is missing "period" column`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			fs := aferofs.NewMemoryFs(log.NewNopLogger())
			if _, found := c.files["in/snapshots.csv"]; !found {
				c.files["in/snapshots.csv"] = "name\n0\n1\n"
			}
			for path, content := range c.files {
				require.NoError(t, fs.WriteFile(filesystem.NewRawFile(path, content)))
			}

			_, err := Load(fs, "in")
			require.Error(t, err)
			assert.Equal(t, c.expected, err.Error())
		})
	}
}

func TestLoadMalformedCsv(t *testing.T) {
	t.Parallel()
	fs := aferofs.NewMemoryFs(log.NewNopLogger())
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile("in/snapshots.csv", "name\n0\n")))
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile("in/generators.csv", "name,p_nom\ngen1,200,extra\n")))

	_, err := Load(fs, "in")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot parse generators file "in/generators.csv"`)
	assert.Contains(t, err.Error(), "wrong number of fields")
}
