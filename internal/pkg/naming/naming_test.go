package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "abc", Normalize("abc"))
	assert.Equal(t, "a_b_c", Normalize("a b c"))
	assert.Equal(t, "gas_plant_1", Normalize("gas plant 1"))
	assert.Equal(t, "already_ok", Normalize("already_ok"))
}

func TestTypeToken(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "load", TypeToken("loads"))
	assert.Equal(t, "generator", TypeToken("generators"))
	assert.Equal(t, "link", TypeToken("links"))
	assert.Equal(t, "store", TypeToken("stores"))
	assert.Equal(t, "storage_unit", TypeToken("storage_units"))
}

func TestElementID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "generator_gas_plant", ElementID("generators", "gas plant"))
	assert.Equal(t, "storage_unit_pumped_hydro", ElementID("storage_units", "pumped hydro"))
	assert.Equal(t, "load_demand", ElementID("loads", "demand"))
	assert.Equal(t, "link_HVDC_1", ElementID("links", "HVDC 1"))
	assert.Equal(t, "store_H2", ElementID("stores", "H2"))
}
