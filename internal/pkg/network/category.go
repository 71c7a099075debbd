package network

import (
	"math"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// Category names, also the element table names.
const (
	CategoryBuses             = "buses"
	CategoryCarriers          = "carriers"
	CategoryLoads             = "loads"
	CategoryGenerators        = "generators"
	CategoryLinks             = "links"
	CategoryLines             = "lines"
	CategoryStorageUnits      = "storage_units"
	CategoryStores            = "stores"
	CategoryGlobalConstraints = "global_constraints"
)

// NullCarrier is the reserved carrier assigned to elements without one.
const NullCarrier = "null"

// Default declares one attribute and its default value.
type Default struct {
	Attr  string
	Value any
}

// CategorySpec describes one supported element category.
type CategorySpec struct {
	// Name is the plural category name, also the element table name.
	Name string
	// Prefixed categories are re-identified with the singular type token.
	Prefixed bool
	// Joined categories resolve carrier secondary attributes per element.
	Joined bool
	// CapacityAttr is the nominal capacity attribute whose bounds are fixed
	// for non-extendable elements, empty when the category has none.
	CapacityAttr string
	// Defaults are the category's attributes with their default values,
	// in declaration order.
	Defaults []Default
}

// Specs returns all supported category specs in processing order.
func Specs() []CategorySpec {
	inf := math.Inf(1)
	return []CategorySpec{
		{
			Name: CategoryBuses,
			Defaults: []Default{
				{"v_nom", 1.0},
				{"x", 0.0},
				{"y", 0.0},
				{"carrier", "AC"},
				{"v_mag_pu_set", 1.0},
				{"v_mag_pu_min", 0.0},
				{"v_mag_pu_max", inf},
				{"active", true},
			},
		},
		{
			Name: CategoryCarriers,
			Defaults: []Default{
				{"co2_emissions", 0.0},
				{"max_growth", inf},
				{"color", ""},
				{"nice_name", ""},
			},
		},
		{
			Name:     CategoryLoads,
			Prefixed: true,
			Joined:   true,
			Defaults: []Default{
				{"bus", ""},
				{"carrier", ""},
				{"p_set", 0.0},
				{"q_set", 0.0},
				{"sign", -1.0},
				{"active", true},
			},
		},
		{
			Name:         CategoryGenerators,
			Prefixed:     true,
			Joined:       true,
			CapacityAttr: "p_nom",
			Defaults: []Default{
				{"bus", ""},
				{"carrier", ""},
				{"p_nom", 0.0},
				{"p_nom_extendable", false},
				{"p_nom_min", 0.0},
				{"p_nom_max", inf},
				{"p_min_pu", 0.0},
				{"p_max_pu", 1.0},
				{"e_sum_min", math.Inf(-1)},
				{"e_sum_max", inf},
				{"sign", 1.0},
				{"marginal_cost", 0.0},
				{"marginal_cost_quadratic", 0.0},
				{"capital_cost", 0.0},
				{"efficiency", 1.0},
				{"committable", false},
				{"active", true},
			},
		},
		{
			Name:         CategoryLinks,
			Prefixed:     true,
			Joined:       true,
			CapacityAttr: "p_nom",
			Defaults: []Default{
				{"bus0", ""},
				{"bus1", ""},
				{"carrier", ""},
				{"efficiency", 1.0},
				{"p_nom", 0.0},
				{"p_nom_extendable", false},
				{"p_nom_min", 0.0},
				{"p_nom_max", inf},
				{"p_min_pu", 0.0},
				{"p_max_pu", 1.0},
				{"marginal_cost", 0.0},
				{"marginal_cost_quadratic", 0.0},
				{"capital_cost", 0.0},
				{"active", true},
			},
		},
		{
			Name: CategoryLines,
			Defaults: []Default{
				{"bus0", ""},
				{"bus1", ""},
				{"carrier", ""},
				{"s_nom", 0.0},
				{"x", 0.0},
				{"r", 0.0},
				{"active", true},
			},
		},
		{
			Name:         CategoryStorageUnits,
			Prefixed:     true,
			Joined:       true,
			CapacityAttr: "p_nom",
			Defaults: []Default{
				{"bus", ""},
				{"carrier", ""},
				{"p_nom", 0.0},
				{"p_nom_extendable", false},
				{"p_nom_min", 0.0},
				{"p_nom_max", inf},
				{"p_min_pu", -1.0},
				{"p_max_pu", 1.0},
				{"sign", 1.0},
				{"marginal_cost", 0.0},
				{"marginal_cost_quadratic", 0.0},
				{"marginal_cost_storage", 0.0},
				{"capital_cost", 0.0},
				{"spill_cost", 0.0},
				{"efficiency_store", 1.0},
				{"efficiency_dispatch", 1.0},
				{"standing_loss", 0.0},
				{"max_hours", 1.0},
				{"inflow", 0.0},
				{"cyclic_state_of_charge", false},
				{"active", true},
			},
		},
		{
			Name:         CategoryStores,
			Prefixed:     true,
			Joined:       true,
			CapacityAttr: "e_nom",
			Defaults: []Default{
				{"bus", ""},
				{"carrier", ""},
				{"e_nom", 0.0},
				{"e_nom_extendable", false},
				{"e_nom_min", 0.0},
				{"e_nom_max", inf},
				{"e_min_pu", 0.0},
				{"e_max_pu", 1.0},
				{"e_initial", 0.0},
				{"e_cyclic", false},
				{"sign", 1.0},
				{"marginal_cost", 0.0},
				{"marginal_cost_quadratic", 0.0},
				{"marginal_cost_storage", 0.0},
				{"capital_cost", 0.0},
				{"standing_loss", 0.0},
				{"active", true},
			},
		},
		{
			Name: CategoryGlobalConstraints,
			Defaults: []Default{
				{"type", "primary_energy"},
				{"carrier_attribute", ""},
				{"sense", "<="},
				{"constant", 0.0},
			},
		},
	}
}

// Category is one element category of a network: its spec, its element
// table and its time-indexed series tables keyed by attribute.
type Category struct {
	spec   CategorySpec
	table  *Table
	series *orderedmap.OrderedMap // attribute -> *SeriesTable
}

func newCategory(spec CategorySpec) *Category {
	return &Category{
		spec:   spec,
		table:  NewTable(spec.Name, spec.Defaults...),
		series: orderedmap.New(),
	}
}

func (c *Category) Name() string {
	return c.spec.Name
}

func (c *Category) Spec() CategorySpec {
	return c.spec
}

func (c *Category) Table() *Table {
	return c.table
}

// Series returns the category's time-indexed tables in insertion order.
func (c *Category) Series() []*SeriesTable {
	out := make([]*SeriesTable, 0, c.series.Len())
	for _, attr := range c.series.Keys() {
		v, _ := c.series.Get(attr)
		out = append(out, v.(*SeriesTable))
	}
	return out
}

func (c *Category) SeriesFor(attr string) (*SeriesTable, bool) {
	v, found := c.series.Get(attr)
	if !found {
		return nil, false
	}
	return v.(*SeriesTable), true
}

// EnsureSeries returns the time-indexed table for the attribute, creating
// an empty one on first use.
func (c *Category) EnsureSeries(attr string) *SeriesTable {
	if st, found := c.SeriesFor(attr); found {
		return st
	}
	st := NewSeriesTable(attr)
	c.series.Set(attr, st)
	return st
}

func (c *Category) clone() *Category {
	clone := &Category{
		spec:   c.spec,
		table:  c.table.Clone(),
		series: orderedmap.New(),
	}
	for _, attr := range c.series.Keys() {
		v, _ := c.series.Get(attr)
		clone.series.Set(attr, v.(*SeriesTable).Clone())
	}
	return clone
}
