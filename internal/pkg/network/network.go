// Package network models the source energy network: one element table per
// component category, time-indexed series tables for attributes that vary
// per snapshot, carriers with secondary attributes, and optional scenarios.
package network

import (
	"slices"

	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// Scenario is one declared scenario with its probability weight.
type Scenario struct {
	Name   string
	Weight float64
}

// Network is a source network snapshot: all categories, the time axis and
// the declared scenarios. A network without scenarios behaves as having
// exactly one implicit scenario with an empty label.
type Network struct {
	name              string
	snapshots         []string
	weightings        []float64
	investmentPeriods []string
	scenarios         []Scenario
	categories        []*Category
	index             map[string]*Category
}

// New creates an empty network with all supported categories.
func New(name string) *Network {
	n := &Network{
		name:  name,
		index: make(map[string]*Category),
	}
	for _, spec := range Specs() {
		c := newCategory(spec)
		n.categories = append(n.categories, c)
		n.index[spec.Name] = c
	}
	return n
}

func (n *Network) Name() string {
	return n.name
}

func (n *Network) Snapshots() []string {
	return slices.Clone(n.snapshots)
}

func (n *Network) Weightings() []float64 {
	return slices.Clone(n.weightings)
}

// SetSnapshots declares the time axis, all weighting factors default to 1.
func (n *Network) SetSnapshots(labels []string) {
	n.snapshots = slices.Clone(labels)
	n.weightings = make([]float64, len(labels))
	for i := range n.weightings {
		n.weightings[i] = 1.0
	}
}

// SetWeightings replaces the snapshot weighting factors, one per snapshot.
func (n *Network) SetWeightings(weightings []float64) {
	if len(weightings) != len(n.snapshots) {
		panic(errors.Errorf(`expected %d weighting factors, got %d`, len(n.snapshots), len(weightings)))
	}
	n.weightings = slices.Clone(weightings)
}

func (n *Network) InvestmentPeriods() []string {
	return slices.Clone(n.investmentPeriods)
}

func (n *Network) SetInvestmentPeriods(periods ...string) {
	n.investmentPeriods = slices.Clone(periods)
}

func (n *Network) Scenarios() []Scenario {
	return slices.Clone(n.scenarios)
}

func (n *Network) HasScenarios() bool {
	return len(n.scenarios) > 0
}

// SetScenarios declares the scenarios and fans the whole network out:
// every element row and every series column is replicated once per
// scenario, scenario-major. Must be called at most once, after all
// elements are loaded.
func (n *Network) SetScenarios(scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return errors.New("at least one scenario is required")
	}
	if n.HasScenarios() {
		return errors.New("scenarios are already set")
	}
	names := make([]string, 0, len(scenarios))
	seen := make(map[string]bool)
	for _, s := range scenarios {
		if s.Name == "" {
			return errors.New("scenario name cannot be empty")
		}
		if seen[s.Name] {
			return errors.Errorf(`duplicate scenario "%s"`, s.Name)
		}
		seen[s.Name] = true
		names = append(names, s.Name)
	}

	n.scenarios = slices.Clone(scenarios)
	for _, c := range n.categories {
		c.table.fanOut(names)
		for _, st := range c.Series() {
			st.fanOut(names)
		}
	}
	return nil
}

// Categories returns all categories in processing order.
func (n *Network) Categories() []*Category {
	return slices.Clone(n.categories)
}

func (n *Network) Category(name string) (*Category, bool) {
	c, found := n.index[name]
	return c, found
}

// Table returns the element table of a supported category.
func (n *Network) Table(category string) *Table {
	c, found := n.index[category]
	if !found {
		panic(errors.Errorf(`unknown category "%s"`, category))
	}
	return c.table
}

func (n *Network) Clone() *Network {
	clone := &Network{
		name:              n.name,
		snapshots:         slices.Clone(n.snapshots),
		weightings:        slices.Clone(n.weightings),
		investmentPeriods: slices.Clone(n.investmentPeriods),
		scenarios:         slices.Clone(n.scenarios),
		index:             make(map[string]*Category),
	}
	for _, c := range n.categories {
		cClone := c.clone()
		clone.categories = append(clone.categories, cClone)
		clone.index[cClone.Name()] = cClone
	}
	return clone
}
