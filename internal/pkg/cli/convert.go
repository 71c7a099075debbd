package cli

import (
	"github.com/spf13/cobra"

	"github.com/enersys/pypsa2gems/internal/pkg/converter"
	"github.com/enersys/pypsa2gems/internal/pkg/converter/series"
	"github.com/enersys/pypsa2gems/internal/pkg/network/networkcsv"
)

const convertShortDescription = `Convert a network directory into a solver study`
const convertLongDescription = `Command "convert"

Load a PyPSA network from the input directory
and write the equivalent GEMS solver study
into the output directory.
`

type convertOptions struct {
	Input            string `json:"input" validate:"required"`
	Output           string `json:"output" validate:"required"`
	Format           string `json:"format" validate:"required,oneof=csv tsv"`
	Solver           string `json:"solver"`
	SolverLogs       bool   `json:"solver-logs"`
	SolverParameters string `json:"solver-parameters"`
	NoOutput         bool   `json:"no-output"`
}

func convertCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: convertShortDescription,
		Long:  convertLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := convertOptions{
				Input:            root.options.GetString("input"),
				Output:           root.options.GetString("output"),
				Format:           root.options.GetString("format"),
				Solver:           root.options.GetString("solver"),
				SolverLogs:       root.options.GetBool("solver-logs"),
				SolverParameters: root.options.GetString("solver-parameters"),
				NoOutput:         root.options.GetBool("no-output"),
			}
			if err := root.validator.Validate(cmd.Context(), o); err != nil {
				return err
			}

			format, err := series.ParseFormat(o.Format)
			if err != nil {
				return err
			}

			net, err := networkcsv.Load(root.fs, o.Input)
			if err != nil {
				return err
			}

			return converter.
				New(root.fs, root.logger, root.clock).
				Run(net, converter.Options{
					StudyDir:         o.Output,
					Format:           format,
					Solver:           o.Solver,
					SolverLogs:       o.SolverLogs,
					SolverParameters: o.SolverParameters,
					NoOutput:         o.NoOutput,
				})
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = true
	flags.StringP("input", "i", "", "path to the network directory")
	flags.StringP("output", "o", "", "path to the study directory")
	flags.String("format", "csv", "format of the written series files: csv or tsv")
	flags.String("solver", "", "solver name for the study parameters")
	flags.Bool("solver-logs", false, "enable the solver log output")
	flags.String("solver-parameters", "", "solver parameters for the study parameters")
	flags.Bool("no-output", false, "let the solver run without writing result files")
	return cmd
}
