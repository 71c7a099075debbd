// Package preprocess validates the source network against the pipeline's
// structural assumptions and normalizes it: the reserved "null" carrier,
// carrier attribute propagation, element re-identification and capacity
// fixing for non-extendable elements.
package preprocess

import (
	"math"

	"github.com/enersys/pypsa2gems/internal/pkg/log"
	"github.com/enersys/pypsa2gems/internal/pkg/naming"
	"github.com/enersys/pypsa2gems/internal/pkg/network"
)

// SecondaryAttrs are the carrier attributes joined onto each element.
type SecondaryAttrs struct {
	CO2Emissions float64
	MaxGrowth    float64
}

// CategorySnapshot maps each carrier to its secondary attributes, captured
// once before preprocessing mutates the carrier table. The join step reads
// the snapshot, never the live table.
type CategorySnapshot map[string]SecondaryAttrs

// Run validates the network and returns a preprocessed deep copy together
// with the carrier snapshot. The caller's network is never mutated; any
// broken invariant aborts with a StructuralViolationError before the first
// side effect.
func Run(net *network.Network, logger log.Logger) (*network.Network, CategorySnapshot, error) {
	if err := assertStructure(net); err != nil {
		return nil, nil, err
	}
	logger.Debugf(`network "%s" passed the structural checks`, net.Name())

	clone := net.Clone()
	addNullCarrier(clone)
	snapshot := captureCarriers(clone)

	ids := naming.NewRegistry()
	if err := normalizeBuses(clone, ids); err != nil {
		return nil, nil, err
	}

	for _, c := range clone.Categories() {
		spec := c.Spec()
		if spec.Joined {
			joinCarrierAttrs(c.Table(), snapshot)
		}
		if spec.Prefixed {
			err := renameElements(c, ids, func(name string) string {
				return naming.ElementID(spec.Name, name)
			})
			if err != nil {
				return nil, nil, err
			}
		}
		if spec.CapacityAttr != "" {
			fixNonExtendable(c.Table(), spec.CapacityAttr)
		}
	}

	logger.Debugf(`network "%s" preprocessed, %d carriers in the snapshot`, clone.Name(), len(snapshot))
	return clone, snapshot, nil
}

type elementCheck struct {
	category string
	noun     string
	verify   func(row *network.Row) string
}

func requireActive(row *network.Row) string {
	if !row.Bool("active") {
		return "is not active, inactive elements are not supported"
	}
	return ""
}

func requireLinearCost(row *network.Row) string {
	if row.Float("marginal_cost_quadratic") != 0 {
		return "has a quadratic marginal cost, only linear costs are supported"
	}
	return ""
}

func requireNotCommittable(row *network.Row) string {
	if row.Bool("committable") {
		return "is committable, unit commitment is not supported"
	}
	return ""
}

func requireUnitSign(row *network.Row) string {
	if row.Float("sign") != 1 {
		return "does not have sign 1"
	}
	return ""
}

func requireFlag(attr, what string) func(row *network.Row) string {
	return func(row *network.Row) string {
		if !row.Bool(attr) {
			return "does not have " + what
		}
		return ""
	}
}

func assertStructure(net *network.Network) error {
	if n := len(net.InvestmentPeriods()); n > 0 {
		return violationf(`multi-period investment is not supported, found %d investment periods`, n)
	}
	snapshots := net.Snapshots()
	for i, w := range net.Weightings() {
		if w != 1.0 {
			return violationf(`snapshot "%s" has weighting %v, only unit weightings are supported`, snapshots[i], w)
		}
	}

	checks := []elementCheck{
		{network.CategoryGenerators, "generator", requireLinearCost},
		{network.CategoryGenerators, "generator", requireActive},
		{network.CategoryGenerators, "generator", requireNotCommittable},
		{network.CategoryLoads, "load", requireActive},
		{network.CategoryLinks, "link", requireActive},
		{network.CategoryStorageUnits, "storage unit", requireActive},
		{network.CategoryStorageUnits, "storage unit", requireUnitSign},
		{network.CategoryStorageUnits, "storage unit", requireFlag("cyclic_state_of_charge", "a cyclic state of charge")},
		{network.CategoryStorageUnits, "storage unit", requireLinearCost},
		{network.CategoryStores, "store", requireActive},
		{network.CategoryStores, "store", requireUnitSign},
		{network.CategoryStores, "store", requireFlag("e_cyclic", "cyclic energy")},
		{network.CategoryStores, "store", requireLinearCost},
	}
	for _, check := range checks {
		for _, row := range net.Table(check.category).Rows() {
			if problem := check.verify(row); problem != "" {
				return violationf(`%s "%s" %s`, check.noun, row.ID().Name, problem)
			}
		}
	}

	if n := net.Table(network.CategoryLines).Len(); n > 0 {
		return violationf(`lines are not supported, found %d`, n)
	}

	for _, row := range net.Table(network.CategoryGlobalConstraints).Rows() {
		if v := row.String("type"); v != "primary_energy" {
			return violationf(`global constraint "%s" has type "%s", only "primary_energy" is supported`, row.ID().Name, v)
		}
		if v := row.String("carrier_attribute"); v != "co2_emissions" {
			return violationf(`global constraint "%s" has attribute "%s", only "co2_emissions" is supported`, row.ID().Name, v)
		}
	}
	return nil
}

// addNullCarrier inserts the reserved carrier assigned to elements without
// one: no emissions, unlimited growth.
func addNullCarrier(net *network.Network) {
	table := net.Table(network.CategoryCarriers)
	ids := []network.ElementID{network.ID(network.NullCarrier)}
	if net.HasScenarios() {
		ids = ids[:0]
		for _, s := range net.Scenarios() {
			ids = append(ids, network.ScenarioID(s.Name, network.NullCarrier))
		}
	}
	for _, id := range ids {
		if !table.Has(id) {
			table.AddRow(id).
				Set("co2_emissions", 0.0).
				Set("max_growth", math.Inf(1))
		}
	}
}

// captureCarriers snapshots the carrier secondary attributes, the first
// scenario row decides.
func captureCarriers(net *network.Network) CategorySnapshot {
	snapshot := make(CategorySnapshot)
	table := net.Table(network.CategoryCarriers)
	for _, name := range table.Names() {
		row := table.RowsFor(name)[0]
		snapshot[name] = SecondaryAttrs{
			CO2Emissions: row.Float("co2_emissions"),
			MaxGrowth:    row.Float("max_growth"),
		}
	}
	return snapshot
}

// normalizeBuses rewrites bus identity network-wide: the bus rows and
// series columns, and every bus reference column of the other categories.
// Buses keep their name, only normalized, they never get a type prefix.
func normalizeBuses(net *network.Network, ids *naming.Registry) error {
	buses, _ := net.Category(network.CategoryBuses)
	if err := renameElements(buses, ids, naming.Normalize); err != nil {
		return err
	}

	for _, c := range net.Categories() {
		table := c.Table()
		for _, column := range []string{"bus", "bus0", "bus1"} {
			if !table.HasColumn(column) {
				continue
			}
			for _, row := range table.Rows() {
				if ref := row.String(column); ref != "" {
					row.Set(column, naming.Normalize(ref))
				}
			}
		}
	}
	return nil
}

// joinCarrierAttrs defaults empty carrier references to "null" and sets
// the secondary attribute columns from the snapshot. An unknown carrier
// contributes zero values, mirroring a left join.
func joinCarrierAttrs(table *network.Table, snapshot CategorySnapshot) {
	for _, row := range table.Rows() {
		carrier := row.String("carrier")
		if carrier == "" {
			carrier = network.NullCarrier
			row.Set("carrier", carrier)
		}
		attrs := snapshot[carrier]
		row.Set("co2_emissions", attrs.CO2Emissions)
		row.Set("max_growth", attrs.MaxGrowth)
	}
}

// renameElements derives a new identifier for every element of the
// category and propagates it to all scenario rows and series columns.
// Every identifier is reserved in the run-wide registry first, so two
// elements deriving the same identifier fail fast.
func renameElements(c *network.Category, ids *naming.Registry, derive func(string) string) error {
	table := c.Table()
	renames := make(map[string]string, table.Len())
	for _, name := range table.Names() {
		now := derive(name)
		if err := ids.Attach(naming.Ref{Category: c.Name(), Name: name}, now); err != nil {
			return &StructuralViolationError{message: err.Error()}
		}
		renames[name] = now
	}

	for _, id := range table.IDs() {
		now := network.ElementID{Scenario: id.Scenario, Name: renames[id.Name]}
		if err := table.RenameRow(id, now); err != nil {
			return &StructuralViolationError{message: err.Error()}
		}
	}
	for _, st := range c.Series() {
		st.RenameColumns(func(id network.ElementID) network.ElementID {
			if now, found := renames[id.Name]; found {
				return network.ElementID{Scenario: id.Scenario, Name: now}
			}
			return id
		})
	}
	return nil
}

// fixNonExtendable pins the capacity bounds of non-extendable elements to
// their fixed capacity and zeroes the capital cost, an element that cannot
// expand must not carry an expansion cost.
func fixNonExtendable(table *network.Table, capacityAttr string) {
	extendable := capacityAttr + "_extendable"
	for _, row := range table.Rows() {
		if row.Bool(extendable) {
			continue
		}
		capacity := row.Get(capacityAttr)
		row.Set(capacityAttr+"_min", capacity)
		row.Set(capacityAttr+"_max", capacity)
		row.Set("capital_cost", 0.0)
	}
}
