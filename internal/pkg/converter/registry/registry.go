// Package registry declares, per component category, the translation
// mappings: which source attributes become which target parameters, and
// which bus reference columns become which port connections. Mappings are
// data, not branches; the pipeline looks them up, it never dispatches on
// the category.
package registry

import (
	"slices"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/enersys/pypsa2gems/internal/pkg/network"
	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// EmissionPort is the port shared by global constraints and their
// contributors.
const EmissionPort = "emission_port"

// Target models of the supported global constraints.
const (
	ModelCO2Max = "global_constraint_co2_max"
	ModelCO2Eq  = "global_constraint_co2_eq"
)

// ParamMapping maps one source attribute to one target parameter.
type ParamMapping struct {
	Attr  string
	Param string
}

// RefMapping maps one bus reference column to a port pair: the local port
// on the translated component and the remote port on the referenced bus.
type RefMapping struct {
	Column     string
	LocalPort  string
	RemotePort string
}

// ComponentData pairs one category's tables with its declarative mappings.
type ComponentData struct {
	category *network.Category
	model    string
	params   []ParamMapping
	refs     []RefMapping
}

func (d *ComponentData) Category() *network.Category {
	return d.category
}

func (d *ComponentData) Table() *network.Table {
	return d.category.Table()
}

// Model returns the target model identifier, without the library prefix.
func (d *ComponentData) Model() string {
	return d.model
}

// Params returns the attribute mappings in declaration order.
func (d *ComponentData) Params() []ParamMapping {
	return slices.Clone(d.params)
}

// Refs returns the bus reference mappings in declaration order.
func (d *ComponentData) Refs() []RefMapping {
	return slices.Clone(d.refs)
}

// CheckConsistency verifies that every mapped attribute and reference
// column exists in the element table. Attributes added by the preprocessor
// count, so the check runs on a preprocessed network.
func (d *ComponentData) CheckConsistency() error {
	table := d.Table()
	for _, m := range d.params {
		if !table.HasColumn(m.Attr) {
			return &MissingMappingError{Category: d.category.Name(), Attr: m.Attr}
		}
	}
	for _, m := range d.refs {
		if !table.HasColumn(m.Column) {
			return &MissingMappingError{Category: d.category.Name(), Attr: m.Column}
		}
	}
	return nil
}

// Components holds the registered component data, in registration order.
type Components struct {
	data *orderedmap.OrderedMap // category name -> *ComponentData
}

func newComponents() *Components {
	return &Components{data: orderedmap.New()}
}

func (c *Components) add(d *ComponentData) error {
	name := d.category.Name()
	if _, found := c.data.Get(name); found {
		return &DuplicateRegistrationError{Category: name}
	}
	c.data.Set(name, d)
	return nil
}

func (c *Components) Len() int {
	return c.data.Len()
}

func (c *Components) Get(category string) (*ComponentData, bool) {
	v, found := c.data.Get(category)
	if !found {
		return nil, false
	}
	return v.(*ComponentData), true
}

// All returns the registered component data in registration order.
func (c *Components) All() []*ComponentData {
	out := make([]*ComponentData, 0, c.data.Len())
	for _, key := range c.data.Keys() {
		v, _ := c.data.Get(key)
		out = append(out, v.(*ComponentData))
	}
	return out
}

// Contributor is one element connected to a global constraint.
type Contributor struct {
	Element string
	Port    string
}

// GlobalConstraintData pairs one declared global constraint with its
// target model and the contributor set.
type GlobalConstraintData struct {
	Name             string
	CarrierAttribute string
	Sense            string
	Constant         any
	Model            string
	Port             string
	Contributors     []Contributor
}

// Register pairs every supported category with its fixed mappings and
// derives the global constraint data. Purely declarative, element values
// are not inspected beyond carriers and constraint rows.
func Register(net *network.Network) (*Components, map[string]*GlobalConstraintData, error) {
	components := newComponents()
	for _, d := range definitions(net) {
		if err := components.add(d); err != nil {
			return nil, nil, err
		}
	}

	constraints, err := registerGlobalConstraints(net)
	if err != nil {
		return nil, nil, err
	}
	return components, constraints, nil
}

func definitions(net *network.Network) []*ComponentData {
	return []*ComponentData{
		{
			category: mustCategory(net, network.CategoryGenerators),
			model:    "generator",
			params: []ParamMapping{
				{"p_nom_min", "p_nom_min"},
				{"p_nom_max", "p_nom_max"},
				{"p_min_pu", "p_min_pu"},
				{"p_max_pu", "p_max_pu"},
				{"marginal_cost", "marginal_cost"},
				{"capital_cost", "capital_cost"},
				{"e_sum_min", "e_sum_min"},
				{"e_sum_max", "e_sum_max"},
				{"sign", "sign"},
				{"efficiency", "efficiency"},
				{"co2_emissions", "emission_factor"},
			},
			refs: []RefMapping{
				{"bus", "p_balance_port", "p_balance_port"},
			},
		},
		{
			category: mustCategory(net, network.CategoryLoads),
			model:    "load",
			params: []ParamMapping{
				{"p_set", "p_set"},
				{"q_set", "q_set"},
				{"sign", "sign"},
			},
			refs: []RefMapping{
				{"bus", "p_balance_port", "p_balance_port"},
			},
		},
		{
			category: mustCategory(net, network.CategoryBuses),
			model:    "bus",
			params: []ParamMapping{
				{"v_nom", "v_nom"},
				{"x", "x"},
				{"y", "y"},
				{"v_mag_pu_set", "v_mag_pu_set"},
				{"v_mag_pu_min", "v_mag_pu_min"},
				{"v_mag_pu_max", "v_mag_pu_max"},
			},
		},
		{
			category: mustCategory(net, network.CategoryLinks),
			model:    "link",
			params: []ParamMapping{
				{"efficiency", "efficiency"},
				{"p_nom_min", "p_nom_min"},
				{"p_nom_max", "p_nom_max"},
				{"p_min_pu", "p_min_pu"},
				{"p_max_pu", "p_max_pu"},
				{"marginal_cost", "marginal_cost"},
				{"capital_cost", "capital_cost"},
			},
			refs: []RefMapping{
				{"bus0", "p0_port", "p_balance_port"},
				{"bus1", "p1_port", "p_balance_port"},
			},
		},
		{
			category: mustCategory(net, network.CategoryStorageUnits),
			model:    "storage_unit",
			params: []ParamMapping{
				{"p_nom_min", "p_nom_min"},
				{"p_nom_max", "p_nom_max"},
				{"p_min_pu", "p_min_pu"},
				{"p_max_pu", "p_max_pu"},
				{"sign", "sign"},
				{"efficiency_store", "efficiency_store"},
				{"efficiency_dispatch", "efficiency_dispatch"},
				{"standing_loss", "standing_loss"},
				{"max_hours", "max_hours"},
				{"marginal_cost", "marginal_cost"},
				{"capital_cost", "capital_cost"},
				{"marginal_cost_storage", "marginal_cost_storage"},
				{"spill_cost", "spill_cost"},
				{"inflow", "inflow"},
				{"co2_emissions", "emission_factor"},
			},
			refs: []RefMapping{
				{"bus", "p_balance_port", "p_balance_port"},
			},
		},
		{
			category: mustCategory(net, network.CategoryStores),
			model:    "store",
			params: []ParamMapping{
				{"sign", "sign"},
				{"e_nom_min", "e_nom_min"},
				{"e_nom_max", "e_nom_max"},
				{"e_min_pu", "e_min_pu"},
				{"e_max_pu", "e_max_pu"},
				{"standing_loss", "standing_loss"},
				{"marginal_cost", "marginal_cost"},
				{"capital_cost", "capital_cost"},
				{"marginal_cost_storage", "marginal_cost_storage"},
				{"co2_emissions", "emission_factor"},
			},
			refs: []RefMapping{
				{"bus", "p_balance_port", "p_balance_port"},
			},
		},
	}
}

func mustCategory(net *network.Network, name string) *network.Category {
	c, found := net.Category(name)
	if !found {
		panic(errors.Errorf(`unknown category "%s"`, name))
	}
	return c
}

type constraintKey struct {
	carrierAttribute string
	sense            string
}

// The closed set of supported global constraint conversions.
var constraintModels = map[constraintKey]string{
	{carrierAttribute: "co2_emissions", sense: "<="}: ModelCO2Max,
	{carrierAttribute: "co2_emissions", sense: "=="}: ModelCO2Eq,
}

func registerGlobalConstraints(net *network.Network) (map[string]*GlobalConstraintData, error) {
	contributors := emissionContributors(net)
	table := net.Table(network.CategoryGlobalConstraints)

	out := make(map[string]*GlobalConstraintData)
	for _, name := range table.Names() {
		// Constraint rows are scenario-invariant, the first row decides.
		row := table.RowsFor(name)[0]
		sense := row.String("sense")
		attribute := row.String("carrier_attribute")
		model, found := constraintModels[constraintKey{carrierAttribute: attribute, sense: sense}]
		if !found {
			return nil, &UnsupportedConstraintError{Constraint: name, CarrierAttribute: attribute, Sense: sense}
		}
		out[name] = &GlobalConstraintData{
			Name:             name,
			CarrierAttribute: attribute,
			Sense:            sense,
			Constant:         row.Get("constant"),
			Model:            model,
			Port:             EmissionPort,
			Contributors:     contributors,
		}
	}
	return out, nil
}

// emissionContributors collects every generator, store and storage unit
// with a real carrier, once per element identity regardless of scenarios.
func emissionContributors(net *network.Network) []Contributor {
	var out []Contributor
	for _, category := range []string{network.CategoryGenerators, network.CategoryStores, network.CategoryStorageUnits} {
		table := net.Table(category)
		for _, name := range table.Names() {
			if table.RowsFor(name)[0].String("carrier") != network.NullCarrier {
				out = append(out, Contributor{Element: name, Port: EmissionPort})
			}
		}
	}
	return out
}
