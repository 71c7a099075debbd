package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRows(t *testing.T) {
	t.Parallel()
	tbl := NewTable("generators", Default{"p_nom", 0.0}, Default{"p_max_pu", 1.0})
	assert.Equal(t, "generators", tbl.Category())
	assert.Equal(t, []string{"p_nom", "p_max_pu"}, tbl.Columns())
	assert.Equal(t, 0, tbl.Len())

	tbl.AddRow(ID("gen1")).Set("p_nom", 200.0)
	tbl.AddRow(ID("gen2"))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []ElementID{ID("gen1"), ID("gen2")}, tbl.IDs())

	row, found := tbl.Row(ID("gen1"))
	require.True(t, found)
	assert.Equal(t, 200.0, row.Float("p_nom"))

	// Default value fallback
	assert.Equal(t, 1.0, row.Float("p_max_pu"))
	row2, _ := tbl.Row(ID("gen2"))
	assert.Equal(t, 0.0, row2.Float("p_nom"))

	// Missing column without default
	assert.Nil(t, row.Get("missing"))
	assert.Equal(t, 0.0, row.Float("missing"))
	assert.Equal(t, "", row.String("missing"))

	// Set declares new columns on the fly
	row.Set("carrier", "gas")
	assert.True(t, tbl.HasColumn("carrier"))
	assert.Equal(t, "gas", row.String("carrier"))
}

func TestTableTypedAccessors(t *testing.T) {
	t.Parallel()
	tbl := NewTable("generators")
	row := tbl.AddRow(ID("gen1")).
		Set("p_nom", 100.0).
		Set("count", "5").
		Set("active", true).
		Set("committable", "False")
	assert.Equal(t, 100.0, row.Float("p_nom"))
	assert.Equal(t, 5.0, row.Float("count"))
	assert.Equal(t, "100", row.String("p_nom"))
	assert.True(t, row.Bool("active"))
	assert.False(t, row.Bool("committable"))
}

func TestTableAddRowDuplicate(t *testing.T) {
	t.Parallel()
	tbl := NewTable("loads")
	tbl.AddRow(ID("load1"))
	assert.PanicsWithError(t, `row "load1" already exists in table "loads"`, func() {
		tbl.AddRow(ID("load1"))
	})
}

func TestTableRenameRow(t *testing.T) {
	t.Parallel()
	tbl := NewTable("loads")
	tbl.AddRow(ID("my load")).Set("p_set", 100.0)
	tbl.AddRow(ID("other"))

	require.NoError(t, tbl.RenameRow(ID("my load"), ID("load_my_load")))
	assert.Equal(t, []ElementID{ID("load_my_load"), ID("other")}, tbl.IDs())
	row, found := tbl.Row(ID("load_my_load"))
	require.True(t, found)
	assert.Equal(t, 100.0, row.Float("p_set"))
	assert.False(t, tbl.Has(ID("my load")))

	// Missing row
	err := tbl.RenameRow(ID("missing"), ID("foo"))
	require.Error(t, err)
	assert.Equal(t, `row "missing" not found in table "loads"`, err.Error())

	// Target exists
	err = tbl.RenameRow(ID("other"), ID("load_my_load"))
	require.Error(t, err)
	assert.Equal(t, `cannot rename row "other" to "load_my_load" in table "loads": target already exists`, err.Error())

	// Rename to itself is a no-op
	require.NoError(t, tbl.RenameRow(ID("other"), ID("other")))
}

func TestTableNamesWithScenarios(t *testing.T) {
	t.Parallel()
	tbl := NewTable("generators")
	tbl.AddRow(ScenarioID("low", "gen1"))
	tbl.AddRow(ScenarioID("low", "gen2"))
	tbl.AddRow(ScenarioID("high", "gen1"))
	tbl.AddRow(ScenarioID("high", "gen2"))
	assert.Equal(t, []string{"gen1", "gen2"}, tbl.Names())

	rows := tbl.RowsFor("gen1")
	require.Len(t, rows, 2)
	assert.Equal(t, ScenarioID("low", "gen1"), rows[0].ID())
	assert.Equal(t, ScenarioID("high", "gen1"), rows[1].ID())
}

func TestTableClone(t *testing.T) {
	t.Parallel()
	tbl := NewTable("generators", Default{"p_nom", 0.0})
	tbl.AddRow(ID("gen1")).Set("p_nom", 200.0)

	clone := tbl.Clone()
	assert.Equal(t, tbl, clone)

	// Mutating the clone must not touch the original
	row, _ := clone.Row(ID("gen1"))
	row.Set("p_nom", 300.0)
	clone.AddRow(ID("gen2"))
	original, _ := tbl.Row(ID("gen1"))
	assert.Equal(t, 200.0, original.Float("p_nom"))
	assert.Equal(t, 1, tbl.Len())
}
