// Package networkcsv loads a network from its CSV folder interchange
// format: snapshots.csv, one <category>.csv per element category, optional
// <category>-<attribute>.csv series files, an optional
// investment_periods.csv and an optional scenarios.csv that fans the
// loaded network out to the declared scenarios.
package networkcsv

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/network"
	"github.com/enersys/pypsa2gems/internal/pkg/utils/errors"
)

const (
	networkFile   = "network.csv"
	snapshotsFile = "snapshots.csv"
	periodsFile   = "investment_periods.csv"
	scenariosFile = "scenarios.csv"
)

// Load reads a network from a CSV folder. Missing category files mean
// empty categories, snapshots.csv is required. The network name comes from
// network.csv, or from the directory name if the file is absent.
func Load(fs filesystem.Fs, dir string) (*network.Network, error) {
	name, err := loadName(fs, dir)
	if err != nil {
		return nil, err
	}

	net := network.New(name)
	if err := loadSnapshots(fs, dir, net); err != nil {
		return nil, err
	}
	if err := loadInvestmentPeriods(fs, dir, net); err != nil {
		return nil, err
	}
	for _, spec := range network.Specs() {
		if err := loadCategory(fs, dir, net, spec); err != nil {
			return nil, err
		}
	}
	for _, spec := range network.Specs() {
		if err := loadCategorySeries(fs, dir, net, spec); err != nil {
			return nil, err
		}
	}
	if err := loadScenarios(fs, dir, net); err != nil {
		return nil, err
	}
	return net, nil
}

func loadName(fs filesystem.Fs, dir string) (string, error) {
	path := filesystem.Join(dir, networkFile)
	if !fs.IsFile(path) {
		return filesystem.Base(dir), nil
	}
	records, err := readRecords(fs, path, "network description")
	if err != nil {
		return "", err
	}
	col := indexOf(records[0], "name")
	if col < 0 {
		return "", errors.Errorf(`file "%s" is missing "name" column`, path)
	}
	if len(records) < 2 {
		return "", errors.Errorf(`file "%s" has no data row`, path)
	}
	return records[1][col], nil
}

func loadSnapshots(fs filesystem.Fs, dir string, net *network.Network) error {
	path := filesystem.Join(dir, snapshotsFile)
	records, err := readRecords(fs, path, "snapshots")
	if err != nil {
		return err
	}
	header := records[0]
	nameCol := indexOf(header, "name")
	if nameCol < 0 {
		return errors.Errorf(`file "%s" is missing "name" column`, path)
	}
	weightingCol := indexOf(header, "weighting")

	var labels []string
	var weightings []float64
	for i, record := range records[1:] {
		labels = append(labels, record[nameCol])
		if weightingCol >= 0 {
			w, err := strconv.ParseFloat(record[weightingCol], 64)
			if err != nil {
				return errors.Errorf(`file "%s": line %d: invalid weighting "%s"`, path, i+2, record[weightingCol])
			}
			weightings = append(weightings, w)
		}
	}
	net.SetSnapshots(labels)
	if weightingCol >= 0 {
		net.SetWeightings(weightings)
	}
	return nil
}

// loadInvestmentPeriods reads the optional period axis. Networks with
// periods are loaded as-is, the preprocessor rejects them later.
func loadInvestmentPeriods(fs filesystem.Fs, dir string, net *network.Network) error {
	path := filesystem.Join(dir, periodsFile)
	if !fs.IsFile(path) {
		return nil
	}
	records, err := readRecords(fs, path, "investment periods")
	if err != nil {
		return err
	}
	periodCol := indexOf(records[0], "period")
	if periodCol < 0 {
		return errors.Errorf(`file "%s" is missing "period" column`, path)
	}
	var periods []string
	for _, record := range records[1:] {
		periods = append(periods, record[periodCol])
	}
	net.SetInvestmentPeriods(periods...)
	return nil
}

func loadCategory(fs filesystem.Fs, dir string, net *network.Network, spec network.CategorySpec) error {
	path := filesystem.Join(dir, spec.Name+".csv")
	if !fs.IsFile(path) {
		return nil
	}
	records, err := readRecords(fs, path, spec.Name)
	if err != nil {
		return err
	}
	header := records[0]
	if err := checkHeader(header, path); err != nil {
		return err
	}
	nameCol := indexOf(header, "name")
	if nameCol < 0 {
		return errors.Errorf(`file "%s" is missing "name" column`, path)
	}

	table := net.Table(spec.Name)
	for i, record := range records[1:] {
		name := record[nameCol]
		if name == "" {
			return errors.Errorf(`file "%s": line %d: element name cannot be empty`, path, i+2)
		}
		if table.Has(network.ID(name)) {
			return errors.Errorf(`file "%s": line %d: duplicate element "%s"`, path, i+2, name)
		}
		row := table.AddRow(network.ID(name))
		for c, value := range record {
			if c == nameCol || value == "" {
				continue
			}
			row.Set(header[c], parseValue(value))
		}
	}
	return nil
}

func loadCategorySeries(fs filesystem.Fs, dir string, net *network.Network, spec network.CategorySpec) error {
	matches, err := fs.Glob(filesystem.Join(dir, spec.Name+"-*.csv"))
	if err != nil {
		return err
	}

	category, _ := net.Category(spec.Name)
	snapshots := net.Snapshots()
	for _, path := range matches {
		base := filesystem.Base(path)
		attr := strings.TrimSuffix(strings.TrimPrefix(base, spec.Name+"-"), ".csv")
		if attr == "" {
			return errors.Errorf(`cannot derive attribute name from file "%s"`, path)
		}

		records, err := readRecords(fs, path, spec.Name+" series")
		if err != nil {
			return err
		}
		header := records[0]
		if err := checkHeader(header, path); err != nil {
			return err
		}
		rows := records[1:]
		if len(rows) != len(snapshots) {
			return errors.Errorf(`file "%s": expected %d rows, one per snapshot, got %d`, path, len(snapshots), len(rows))
		}

		// One column of values per element, snapshot labels must match
		// the time axis exactly.
		values := make([][]float64, len(header))
		for i, record := range rows {
			if record[0] != snapshots[i] {
				return errors.Errorf(`file "%s": line %d: snapshot "%s" does not match "%s"`, path, i+2, record[0], snapshots[i])
			}
			for c := 1; c < len(record); c++ {
				v, err := strconv.ParseFloat(record[c], 64)
				if err != nil {
					return errors.Errorf(`file "%s": line %d: invalid value "%s"`, path, i+2, record[c])
				}
				values[c] = append(values[c], v)
			}
		}

		series := category.EnsureSeries(attr)
		for c := 1; c < len(header); c++ {
			name := header[c]
			if !net.Table(spec.Name).Has(network.ID(name)) {
				return errors.Errorf(`file "%s": unknown element "%s"`, path, name)
			}
			series.AddColumn(network.ID(name), values[c])
		}
	}
	return nil
}

func loadScenarios(fs filesystem.Fs, dir string, net *network.Network) error {
	path := filesystem.Join(dir, scenariosFile)
	if !fs.IsFile(path) {
		return nil
	}
	records, err := readRecords(fs, path, "scenarios")
	if err != nil {
		return err
	}
	header := records[0]
	nameCol := indexOf(header, "name")
	weightCol := indexOf(header, "weight")
	if nameCol < 0 || weightCol < 0 {
		return errors.Errorf(`file "%s" must have "name" and "weight" columns`, path)
	}

	var scenarios []network.Scenario
	for i, record := range records[1:] {
		weight, err := strconv.ParseFloat(record[weightCol], 64)
		if err != nil {
			return errors.Errorf(`file "%s": line %d: invalid weight "%s"`, path, i+2, record[weightCol])
		}
		scenarios = append(scenarios, network.Scenario{Name: record[nameCol], Weight: weight})
	}
	if err := net.SetScenarios(scenarios); err != nil {
		return errors.Errorf(`file "%s": %w`, path, err)
	}
	return nil
}

func readRecords(fs filesystem.Fs, path, desc string) ([][]string, error) {
	file, err := fs.ReadFile(filesystem.NewFileDef(path).SetDescription(desc))
	if err != nil {
		return nil, err
	}
	records, err := csv.NewReader(strings.NewReader(file.Content)).ReadAll()
	if err != nil {
		return nil, errors.Errorf(`cannot parse %s file "%s": %w`, desc, path, err)
	}
	if len(records) == 0 {
		return nil, errors.Errorf(`%s file "%s" is empty`, desc, path)
	}
	return records, nil
}

func checkHeader(header []string, path string) error {
	seen := make(map[string]bool)
	for _, column := range header {
		if column == "" {
			return errors.Errorf(`file "%s" has an empty column name`, path)
		}
		if seen[column] {
			return errors.Errorf(`file "%s" has a duplicate column "%s"`, path, column)
		}
		seen[column] = true
	}
	return nil
}

func indexOf(header []string, name string) int {
	for i, column := range header {
		if column == name {
			return i
		}
	}
	return -1
}

// parseValue types a CSV cell: booleans and numbers are recognized,
// everything else stays a string.
func parseValue(value string) any {
	switch value {
	case "True", "true":
		return true
	case "False", "false":
		return false
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
