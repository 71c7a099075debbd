package cli

import (
	"github.com/spf13/cobra"

	"github.com/enersys/pypsa2gems/internal/pkg/converter/preprocess"
	"github.com/enersys/pypsa2gems/internal/pkg/network/networkcsv"
)

const checkShortDescription = `Check that a network directory can be converted`
const checkLongDescription = `Command "check"

Load a PyPSA network from the input directory
and run the structural checks, without writing
any study file.
`

type checkOptions struct {
	Input string `json:"input" validate:"required"`
}

func checkCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: checkShortDescription,
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := checkOptions{Input: root.options.GetString("input")}
			if err := root.validator.Validate(cmd.Context(), o); err != nil {
				return err
			}

			net, err := networkcsv.Load(root.fs, o.Input)
			if err != nil {
				return err
			}
			if _, _, err := preprocess.Run(net, root.logger); err != nil {
				return err
			}

			root.logger.Info("Everything is good.")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = true
	flags.StringP("input", "i", "", "path to the network directory")
	return cmd
}
