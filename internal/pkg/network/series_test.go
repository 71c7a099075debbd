package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesTable(t *testing.T) {
	t.Parallel()
	st := NewSeriesTable("p_set")
	assert.Equal(t, "p_set", st.Attr())
	assert.Equal(t, 0, st.Len())

	st.AddColumn(ID("load1"), []float64{100, 110, 120})
	st.AddColumn(ID("load2"), []float64{50, 50, 50})
	assert.Equal(t, 2, st.Len())
	assert.Equal(t, []ElementID{ID("load1"), ID("load2")}, st.Columns())
	assert.Equal(t, []string{"load1", "load2"}, st.Names())

	values, found := st.Column(ID("load1"))
	require.True(t, found)
	assert.Equal(t, []float64{100, 110, 120}, values)
	_, found = st.Column(ID("missing"))
	assert.False(t, found)

	assert.PanicsWithError(t, `column "load1" already exists in series table "p_set"`, func() {
		st.AddColumn(ID("load1"), nil)
	})
}

func TestSeriesTableScenarioColumns(t *testing.T) {
	t.Parallel()
	st := NewSeriesTable("p_max_pu")
	st.AddColumn(ScenarioID("low", "gen1"), []float64{0.9})
	st.AddColumn(ScenarioID("low", "gen2"), []float64{0.7})
	st.AddColumn(ScenarioID("high", "gen1"), []float64{0.3})
	st.AddColumn(ScenarioID("high", "gen2"), []float64{0.1})

	assert.Equal(t, []string{"gen1", "gen2"}, st.Names())
	assert.Equal(t, []ElementID{ScenarioID("low", "gen1"), ScenarioID("high", "gen1")}, st.ColumnsFor("gen1"))
}

func TestSeriesTableRenameColumns(t *testing.T) {
	t.Parallel()
	st := NewSeriesTable("p_set")
	st.AddColumn(ID("my load"), []float64{100})
	st.AddColumn(ID("other"), []float64{50})

	st.RenameColumns(func(id ElementID) ElementID {
		if id.Name == "my load" {
			return ID("load_my_load")
		}
		return id
	})
	assert.Equal(t, []ElementID{ID("load_my_load"), ID("other")}, st.Columns())
	values, found := st.Column(ID("load_my_load"))
	require.True(t, found)
	assert.Equal(t, []float64{100}, values)
	assert.False(t, st.Has(ID("my load")))
}

func TestSeriesTableClone(t *testing.T) {
	t.Parallel()
	st := NewSeriesTable("p_set")
	st.AddColumn(ID("load1"), []float64{100, 110})

	clone := st.Clone()
	assert.Equal(t, st, clone)

	values, _ := clone.Column(ID("load1"))
	values[0] = 999
	original, _ := st.Column(ID("load1"))
	assert.Equal(t, []float64{100, 110}, original)
}
