package network

import (
	"slices"

	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// SeriesTable holds the time-varying values of one attribute: one column
// of float64 per element, one value per snapshot.
type SeriesTable struct {
	attr    string
	columns []ElementID
	values  map[ElementID][]float64
}

func NewSeriesTable(attr string) *SeriesTable {
	return &SeriesTable{
		attr:   attr,
		values: make(map[ElementID][]float64),
	}
}

func (t *SeriesTable) Attr() string {
	return t.attr
}

func (t *SeriesTable) Len() int {
	return len(t.columns)
}

// Columns returns the column IDs in insertion order.
func (t *SeriesTable) Columns() []ElementID {
	out := make([]ElementID, len(t.columns))
	copy(out, t.columns)
	return out
}

// Names returns the distinct element names in column order, the scenario
// dimension collapsed.
func (t *SeriesTable) Names() []string {
	var out []string
	seen := make(map[string]bool)
	for _, id := range t.columns {
		if !seen[id.Name] {
			seen[id.Name] = true
			out = append(out, id.Name)
		}
	}
	return out
}

func (t *SeriesTable) Has(id ElementID) bool {
	_, found := t.values[id]
	return found
}

// AddColumn appends a new column. The ID must not be present yet.
func (t *SeriesTable) AddColumn(id ElementID, values []float64) {
	if t.Has(id) {
		panic(errors.Errorf(`column "%s" already exists in series table "%s"`, id.String(), t.attr))
	}
	t.columns = append(t.columns, id)
	t.values[id] = values
}

func (t *SeriesTable) Column(id ElementID) ([]float64, bool) {
	values, found := t.values[id]
	return values, found
}

// ColumnsFor returns the IDs of all columns of one element name, in column
// order. In scenario mode that is one column per scenario.
func (t *SeriesTable) ColumnsFor(name string) []ElementID {
	var out []ElementID
	for _, id := range t.columns {
		if id.Name == name {
			out = append(out, id)
		}
	}
	return out
}

// RenameColumns rewrites every column ID through the given function.
func (t *SeriesTable) RenameColumns(rename func(ElementID) ElementID) {
	values := make(map[ElementID][]float64, len(t.values))
	for i, id := range t.columns {
		now := rename(id)
		t.columns[i] = now
		values[now] = t.values[id]
	}
	t.values = values
}

func (t *SeriesTable) Clone() *SeriesTable {
	clone := &SeriesTable{
		attr:    t.attr,
		columns: slices.Clone(t.columns),
		values:  make(map[ElementID][]float64, len(t.values)),
	}
	for id, values := range t.values {
		clone.values[id] = slices.Clone(values)
	}
	return clone
}

// fanOut replicates every column once per scenario, scenario labels in the
// given order, original column order within each scenario.
func (t *SeriesTable) fanOut(scenarios []string) {
	columns := t.columns
	t.columns = make([]ElementID, 0, len(columns)*len(scenarios))
	values := make(map[ElementID][]float64, len(columns)*len(scenarios))
	for _, scenario := range scenarios {
		for _, id := range columns {
			now := ElementID{Scenario: scenario, Name: id.Name}
			t.columns = append(t.columns, now)
			values[now] = slices.Clone(t.values[id])
		}
	}
	t.values = values
}
