// Package builder translates registered element categories into system
// components and port connections.
package builder

import (
	"github.com/enersys/pypsa2gems/internal/pkg/converter/registry"
	"github.com/enersys/pypsa2gems/internal/pkg/converter/series"
	"github.com/enersys/pypsa2gems/internal/pkg/gems"
	"github.com/enersys/pypsa2gems/internal/pkg/network"
)

// Build translates one registered category: one component per distinct
// element and one connection per bus reference. Scenario rows collapse
// into a single component, the topology is read from the first scenario
// row.
func Build(data *registry.ComponentData, result *series.Result) ([]gems.Component, []gems.Connection, error) {
	table := data.Table()
	model := gems.ModelLibraryID + "." + data.Model()

	names := table.Names()
	components := make([]gems.Component, 0, len(names))
	connections := make([]gems.Connection, 0)
	for _, element := range names {
		row := table.RowsFor(element)[0]

		parameters := make([]gems.ComponentParameter, 0, len(data.Params()))
		for _, mapping := range data.Params() {
			parameters = append(parameters, resolve(element, mapping, row, result))
		}
		components = append(components, gems.Component{
			ID:         element,
			Model:      model,
			Parameters: parameters,
		})

		for _, ref := range data.Refs() {
			target := row.String(ref.Column)
			if target == "" {
				return nil, nil, &MissingReferenceError{Element: element, Column: ref.Column}
			}
			connections = append(connections, gems.Connection{
				Component1: target,
				Port1:      ref.RemotePort,
				Component2: element,
				Port2:      ref.LocalPort,
			})
		}
	}
	return components, connections, nil
}

// resolve applies the value precedence: a time series wins, then a static
// per-scenario series, then the element's scalar.
func resolve(element string, mapping registry.ParamMapping, row *network.Row, result *series.Result) gems.ComponentParameter {
	key := series.Key{Element: element, Attr: mapping.Attr}
	if ref, found := result.Time[key]; found {
		return gems.ComponentParameter{
			ID:                mapping.Param,
			TimeDependent:     true,
			ScenarioDependent: ref.MultiScenario,
			Value:             ref.Name,
		}
	}
	if ref, found := result.Static[key]; found && ref.IsSeries() {
		return gems.ComponentParameter{
			ID:                mapping.Param,
			TimeDependent:     false,
			ScenarioDependent: true,
			Value:             ref.Name,
		}
	}
	return gems.ComponentParameter{
		ID:    mapping.Param,
		Value: gems.Sanitize(row.Get(mapping.Attr)),
	}
}

// BuildGlobalConstraint translates one global constraint: a component with
// a single quota parameter and one connection per contributing element.
func BuildGlobalConstraint(gc *registry.GlobalConstraintData) (gems.Component, []gems.Connection) {
	component := gems.Component{
		ID:    gc.Name,
		Model: gems.ModelLibraryID + "." + gc.Model,
		Parameters: []gems.ComponentParameter{
			{ID: "quota", Value: gems.Sanitize(gc.Constant)},
		},
	}

	connections := make([]gems.Connection, 0, len(gc.Contributors))
	for _, contributor := range gc.Contributors {
		connections = append(connections, gems.Connection{
			Component1: gc.Name,
			Port1:      gc.Port,
			Component2: contributor.Element,
			Port2:      contributor.Port,
		})
	}
	return component, connections
}
