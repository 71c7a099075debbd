// Package series materializes the time-varying and scenario-varying
// attribute values of registered element categories as data-series files.
//
// The writer runs two passes per category. The time pass writes one file
// per element and time-indexed attribute, one column per scenario, one row
// per time step. The static pass covers the remaining mapped attributes:
// a value shared by all scenario rows stays a scalar, values that differ
// become a one-row file with one column per scenario. Both passes register
// their outcome in the Result consumed by the model builder.
package series

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/enersys/pypsa2gems/internal/pkg/converter/registry"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/gems"
	"github.com/enersys/pypsa2gems/internal/pkg/network"
)

// Format selects the extension and separator of the written files.
type Format string

const (
	FormatCSV = Format("csv")
	FormatTSV = Format("tsv")
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch format := Format(value); format {
	case FormatCSV, FormatTSV:
		return format, nil
	default:
		return "", &UnsupportedFormatError{Format: value}
	}
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	if f == FormatTSV {
		return ".tsv"
	}
	return ".csv"
}

func (f Format) separator() rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

// Key addresses one attribute of one element, the scenario dimension
// excluded.
type Key struct {
	Element string
	Attr    string
}

// TimeSeriesRef points to a written time-indexed series file.
type TimeSeriesRef struct {
	Name          string
	MultiScenario bool
}

// StaticRef resolves a static attribute: either a scalar shared by all
// scenario rows, or the name of a one-row series file when the values
// differ between scenarios.
type StaticRef struct {
	Name   string
	Scalar float64
}

// IsSeries reports whether the reference points to a written file.
func (r StaticRef) IsSeries() bool {
	return r.Name != ""
}

// Result registers the written series of one category.
type Result struct {
	Time   map[Key]TimeSeriesRef
	Static map[Key]StaticRef
}

// Writer writes the data-series files of one run. Series names follow the
// "{run}_{element}_{attribute}" pattern and are unique within a run, so
// files are simply overwritten when the target directory is reused.
type Writer struct {
	fs      filesystem.Fs
	dir     string
	format  Format
	runName string
}

func NewWriter(fs filesystem.Fs, dir string, format Format, runName string) *Writer {
	return &Writer{fs: fs, dir: dir, format: format, runName: runName}
}

// Write materializes the series of one registered category. The target
// directory comes to exist only if at least one file is written, studies
// without series do not carry an empty directory.
func (w *Writer) Write(data *registry.ComponentData) (*Result, error) {
	result := &Result{
		Time:   make(map[Key]TimeSeriesRef),
		Static: make(map[Key]StaticRef),
	}
	if err := w.writeTimeSeries(data, result); err != nil {
		return nil, err
	}
	if err := w.writeStaticSeries(data, result); err != nil {
		return nil, err
	}
	return result, nil
}

// writeTimeSeries covers the mapped attributes that have a time-indexed
// table: one file per element, one column per scenario, one row per time
// step, no header.
func (w *Writer) writeTimeSeries(data *registry.ComponentData, result *Result) error {
	category := data.Category()
	for _, mapping := range data.Params() {
		seriesTable, found := category.SeriesFor(mapping.Attr)
		if !found {
			continue
		}
		for _, element := range seriesTable.Names() {
			columns := seriesTable.ColumnsFor(element)
			name := w.seriesName(element, mapping.Attr)
			if err := w.writeFile(name, transpose(seriesTable, columns)); err != nil {
				return err
			}
			result.Time[Key{Element: element, Attr: mapping.Attr}] = TimeSeriesRef{
				Name:          name,
				MultiScenario: len(columns) > 1,
			}
		}
	}
	return nil
}

// writeStaticSeries covers the mapped element-table attributes left over
// by the time pass.
func (w *Writer) writeStaticSeries(data *registry.ComponentData, result *Result) error {
	table := data.Table()
	for _, mapping := range data.Params() {
		if !table.HasColumn(mapping.Attr) {
			continue
		}
		for _, element := range table.Names() {
			key := Key{Element: element, Attr: mapping.Attr}
			if _, found := result.Time[key]; found {
				continue
			}

			rows := table.RowsFor(element)
			values := make([]float64, len(rows))
			for i, row := range rows {
				values[i] = gems.SanitizeFloat(row.Float(mapping.Attr))
			}
			if allEqual(values) {
				result.Static[key] = StaticRef{Scalar: values[0]}
				continue
			}

			name := w.seriesName(element, mapping.Attr)
			if err := w.writeFile(name, [][]string{formatValues(values)}); err != nil {
				return err
			}
			result.Static[key] = StaticRef{Name: name}
		}
	}
	return nil
}

func (w *Writer) seriesName(element, attr string) string {
	return w.runName + "_" + element + "_" + attr
}

func (w *Writer) writeFile(name string, records [][]string) error {
	var out strings.Builder
	writer := csv.NewWriter(&out)
	writer.Comma = w.format.separator()
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	path := filesystem.Join(w.dir, name+w.format.Extension())
	return w.fs.WriteFile(filesystem.NewRawFile(path, out.String()).SetDescription("data series"))
}

// transpose turns the column-major series storage into file rows.
func transpose(table *network.SeriesTable, columns []network.ElementID) [][]string {
	series := make([][]float64, len(columns))
	for i, id := range columns {
		series[i], _ = table.Column(id)
	}

	var steps int
	if len(series) > 0 {
		steps = len(series[0])
	}
	records := make([][]string, steps)
	for step := 0; step < steps; step++ {
		record := make([]string, len(series))
		for i, values := range series {
			record[i] = formatValue(values[step])
		}
		records[step] = record
	}
	return records
}

func formatValues(values []float64) []string {
	out := make([]string, len(values))
	for i, value := range values {
		out[i] = formatValue(value)
	}
	return out
}

func formatValue(value float64) string {
	return strconv.FormatFloat(gems.SanitizeFloat(value), 'g', -1, 64)
}

func allEqual(values []float64) bool {
	for _, value := range values {
		if value != values[0] {
			return false
		}
	}
	return true
}
