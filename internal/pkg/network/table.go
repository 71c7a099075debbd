package network

import (
	"maps"
	"slices"

	"github.com/spf13/cast"

	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

// ElementID identifies one row of an element table.
// The scenario label is empty when the network has no scenarios.
type ElementID struct {
	Scenario string
	Name     string
}

func ID(name string) ElementID {
	return ElementID{Name: name}
}

func ScenarioID(scenario, name string) ElementID {
	return ElementID{Scenario: scenario, Name: name}
}

func (id ElementID) String() string {
	if id.Scenario == "" {
		return id.Name
	}
	return id.Scenario + "/" + id.Name
}

// Table is an element table: ordered rows keyed by ElementID, ordered
// columns, dynamically typed cells. Cells not explicitly set fall back to
// the column default declared by the category.
type Table struct {
	category string
	columns  []string
	defaults map[string]any
	rows     []*Row
	index    map[ElementID]*Row
}

// Row is one element of a Table.
type Row struct {
	table *Table
	id    ElementID
	cells map[string]any
}

func NewTable(category string, defaults ...Default) *Table {
	t := &Table{
		category: category,
		defaults: make(map[string]any),
		index:    make(map[ElementID]*Row),
	}
	for _, d := range defaults {
		t.columns = append(t.columns, d.Attr)
		t.defaults[d.Attr] = d.Value
	}
	return t
}

func (t *Table) Category() string {
	return t.category
}

func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn declares a column without a default value. Adding an already
// declared column is a no-op.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Rows() []*Row {
	out := make([]*Row, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *Table) Row(id ElementID) (*Row, bool) {
	row, found := t.index[id]
	return row, found
}

func (t *Table) Has(id ElementID) bool {
	_, found := t.index[id]
	return found
}

// AddRow appends a new row. The ID must not be present yet, the caller is
// expected to check first.
func (t *Table) AddRow(id ElementID) *Row {
	if t.Has(id) {
		panic(errors.Errorf(`row "%s" already exists in table "%s"`, id.String(), t.category))
	}
	row := &Row{table: t, id: id, cells: make(map[string]any)}
	t.rows = append(t.rows, row)
	t.index[id] = row
	return row
}

// RenameRow changes a row's ID, keeping its position and cells.
func (t *Table) RenameRow(old, now ElementID) error {
	row, found := t.index[old]
	if !found {
		return errors.Errorf(`row "%s" not found in table "%s"`, old.String(), t.category)
	}
	if old == now {
		return nil
	}
	if t.Has(now) {
		return errors.Errorf(`cannot rename row "%s" to "%s" in table "%s": target already exists`, old.String(), now.String(), t.category)
	}
	delete(t.index, old)
	row.id = now
	t.index[now] = row
	return nil
}

// IDs returns the row IDs in table order.
func (t *Table) IDs() []ElementID {
	out := make([]ElementID, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row.id)
	}
	return out
}

// Names returns the distinct element names in table order, the scenario
// dimension collapsed.
func (t *Table) Names() []string {
	var out []string
	seen := make(map[string]bool)
	for _, row := range t.rows {
		if !seen[row.id.Name] {
			seen[row.id.Name] = true
			out = append(out, row.id.Name)
		}
	}
	return out
}

// RowsFor returns all rows of one element name, in table order.
// In scenario mode that is one row per scenario.
func (t *Table) RowsFor(name string) []*Row {
	var out []*Row
	for _, row := range t.rows {
		if row.id.Name == name {
			out = append(out, row)
		}
	}
	return out
}

func (t *Table) Clone() *Table {
	clone := &Table{
		category: t.category,
		columns:  slices.Clone(t.columns),
		defaults: maps.Clone(t.defaults),
		index:    make(map[ElementID]*Row, len(t.rows)),
	}
	for _, row := range t.rows {
		rowClone := &Row{table: clone, id: row.id, cells: maps.Clone(row.cells)}
		clone.rows = append(clone.rows, rowClone)
		clone.index[row.id] = rowClone
	}
	return clone
}

// fanOut replicates every row once per scenario, scenario labels in the
// given order, original row order within each scenario.
func (t *Table) fanOut(scenarios []string) {
	rows := t.rows
	t.rows = make([]*Row, 0, len(rows)*len(scenarios))
	t.index = make(map[ElementID]*Row, len(rows)*len(scenarios))
	for _, scenario := range scenarios {
		for _, row := range rows {
			clone := &Row{
				table: t,
				id:    ElementID{Scenario: scenario, Name: row.id.Name},
				cells: maps.Clone(row.cells),
			}
			t.rows = append(t.rows, clone)
			t.index[clone.id] = clone
		}
	}
}

func (r *Row) ID() ElementID {
	return r.id
}

// Set stores a value, declaring the column on the fly if needed.
func (r *Row) Set(column string, value any) *Row {
	r.table.AddColumn(column)
	r.cells[column] = value
	return r
}

// Get returns the cell value, or the column default if the cell was never
// set, or nil when there is no default either.
func (r *Row) Get(column string) any {
	if v, found := r.cells[column]; found {
		return v
	}
	return r.table.defaults[column]
}

func (r *Row) Float(column string) float64 {
	v := r.Get(column)
	if f, ok := v.(float64); ok {
		return f
	}
	return cast.ToFloat64(v)
}

func (r *Row) String(column string) string {
	return cast.ToString(r.Get(column))
}

func (r *Row) Bool(column string) bool {
	return cast.ToBool(r.Get(column))
}
