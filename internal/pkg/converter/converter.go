// Package converter drives the translation of an energy network into a
// declarative solver study: structural preprocessing, category
// registration, series materialization, model building and the study
// output files.
package converter

import (
	"github.com/jonboulle/clockwork"

	"github.com/enersys/pypsa2gems/internal/pkg/converter/builder"
	"github.com/enersys/pypsa2gems/internal/pkg/converter/preprocess"
	"github.com/enersys/pypsa2gems/internal/pkg/converter/registry"
	"github.com/enersys/pypsa2gems/internal/pkg/converter/series"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/gems"
	"github.com/enersys/pypsa2gems/internal/pkg/log"
	"github.com/enersys/pypsa2gems/internal/pkg/network"
)

// Converter translates networks into study directories. One instance can
// run repeated conversions, each run owns its study directory exclusively
// for the duration of the run.
type Converter struct {
	fs     filesystem.Fs
	logger log.Logger
	clock  clockwork.Clock
}

// Options configure one conversion run. The study is written under
// StudyDir, an empty Format means CSV, solver fields override the
// solver-parameter defaults when set.
type Options struct {
	StudyDir         string
	Format           series.Format
	Solver           string
	SolverLogs       bool
	SolverParameters string
	NoOutput         bool
}

func (o Options) modelerParameters(lastTimeStep int) gems.ModelerParameters {
	parameters := gems.NewModelerParameters(lastTimeStep)
	if o.Solver != "" {
		parameters.Solver = o.Solver
	}
	if o.SolverParameters != "" {
		parameters.SolverParameters = o.SolverParameters
	}
	parameters.SolverLogs = o.SolverLogs
	parameters.NoOutput = o.NoOutput
	return parameters
}

func New(fs filesystem.Fs, logger log.Logger, clock clockwork.Clock) *Converter {
	return &Converter{fs: fs, logger: logger, clock: clock}
}

// Run translates the network and writes the study under o.StudyDir. Any
// pipeline error aborts the run, already written series files are not
// rolled back.
func (c *Converter) Run(net *network.Network, o Options) error {
	startedAt := c.clock.Now()
	c.logger.Infof(`study conversion started, network "%s"`, net.Name())

	prepared, _, err := preprocess.Run(net, c.logger)
	if err != nil {
		return err
	}

	components, constraints, err := registry.Register(prepared)
	if err != nil {
		return err
	}

	system := gems.NewSystem(prepared.Name())
	writer := series.NewWriter(c.fs, filesystem.Join(o.StudyDir, gems.SeriesDir), o.Format, system.ID)

	for _, data := range components.All() {
		if err := data.CheckConsistency(); err != nil {
			return err
		}
		result, err := writer.Write(data)
		if err != nil {
			return err
		}
		built, connections, err := builder.Build(data, result)
		if err != nil {
			return err
		}
		// Buses are the connection endpoints and live in the nodes
		// section, everything else is a component.
		if data.Category().Name() == network.CategoryBuses {
			system.Nodes = append(system.Nodes, built...)
		} else {
			system.Components = append(system.Components, built...)
		}
		system.Connections = append(system.Connections, connections...)
	}

	// Global constraints follow the element categories, in declaration
	// order. Register covers every declared constraint or fails, the
	// lookup cannot miss.
	for _, name := range prepared.Table(network.CategoryGlobalConstraints).Names() {
		component, connections := builder.BuildGlobalConstraint(constraints[name])
		system.Components = append(system.Components, component)
		system.Connections = append(system.Connections, connections...)
	}

	if err := system.Save(c.fs, o.StudyDir); err != nil {
		return err
	}
	if err := o.modelerParameters(len(prepared.Snapshots()) - 1).Save(c.fs, o.StudyDir); err != nil {
		return err
	}
	if err := gems.WriteModelLibrary(c.fs, o.StudyDir); err != nil {
		return err
	}
	if prepared.HasScenarios() {
		if err := gems.WriteOptimConfig(c.fs, o.StudyDir); err != nil {
			return err
		}
	}

	c.logger.Infof(`study "%s" written in %s`, system.ID, c.clock.Since(startedAt))
	return nil
}
