package cli

import (
	"io"
	"os"
	"path"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/enersys/pypsa2gems/internal/pkg/cli/options"
	"github.com/enersys/pypsa2gems/internal/pkg/env"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/log"
	"github.com/enersys/pypsa2gems/internal/pkg/validator"
	"github.com/enersys/pypsa2gems/internal/pkg/version"
)

const description = `
PyPSA to GEMS converter

Translate a PyPSA energy network, exported as
a directory of CSV files, into a declarative
GEMS solver study.

Run the "convert" sub-command with the network
and the study directories, or "check" to verify
a network without writing anything.
`

type rootCommand struct {
	cmd         *cobra.Command
	fsFactory   filesystem.Factory
	fs          filesystem.Fs      // filesystem abstraction, rooted at the working directory
	envs        *env.Map           // ENVs from OS
	options     *options.Options   // parsed flags and env variables
	validator   validator.Validator
	clock       clockwork.Clock
	logger      log.Logger // log to console and log file
	logFile     *log.File
	initialized bool // init method was called
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdout io.Writer, stderr io.Writer, envs *env.Map, fsFactory filesystem.Factory) *rootCommand {
	root := &rootCommand{
		fsFactory: fsFactory,
		envs:      envs,
		options:   options.NewOptions(),
		validator: validator.New(),
		clock:     clockwork.NewRealClock(),
	}

	// Command definition
	root.cmd = &cobra.Command{
		Use:          path.Base(os.Args[0]), // name of the binary
		Version:      version.Version(),
		Short:        description,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return root.cmd.Help()
		},
	}

	// Setup in/out
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	// Setup templates
	root.cmd.SetVersionTemplate("{{.Version}}")

	// Persistent flags for all sub-commands
	flags := root.cmd.PersistentFlags()
	flags.SortFlags = true
	flags.BoolP("help", "h", false, "print help for command")
	flags.StringP("log-file", "l", "", "path to a log file for details")
	flags.StringP("working-dir", "d", "", "use other working directory")
	flags.BoolP("verbose", "v", false, "print details")

	// Root command flags
	root.cmd.Flags().SortFlags = true
	root.cmd.Flags().BoolP("version", "V", false, "print version")

	// Init when flags are parsed
	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return root.init(cmd)
	}

	// Sub-commands
	root.cmd.AddCommand(
		checkCommand(root),
		convertCommand(root),
	)

	return root
}

// Execute command or sub-command.
func (root *rootCommand) Execute() (exitCode int) {
	if err := root.cmd.Execute(); err != nil {
		// Init, it can be uninitialized, if error occurred before PersistentPreRun call
		_ = root.init(root.cmd)
		// Error is already printed by cobra through the logger
		exitCode = 1
	}
	root.tearDown(exitCode != 0)
	return exitCode
}

// tearDown makes clean-up after command execution.
func (root *rootCommand) tearDown(errorOccurred bool) {
	if root.logFile == nil {
		return
	}
	if errorOccurred && root.logFile.IsTemp() {
		root.logger.Infof(`Details can be found in the log file "%s".`, root.logFile.Path())
	}
	root.logFile.TearDown(errorOccurred)
}

// init sets logger and options after flags are parsed.
func (root *rootCommand) init(cmd *cobra.Command) (err error) {
	if root.initialized {
		return
	}

	// Run only once
	root.initialized = true

	// Logger must always be set up, even if the load fails
	defer func() {
		if root.logger == nil {
			root.setupLogger()
		}
	}()

	// Temporary logger before the log file is ready
	tmpLogger := log.NewNopLogger()

	// Create filesystem abstraction
	workingDir, _ := cmd.Flags().GetString("working-dir")
	if root.fs, err = root.fsFactory(tmpLogger, workingDir); err != nil {
		return err
	}

	// Load values from flags and envs
	if err = root.options.Load(tmpLogger, root.envs, root.fs, cmd.Flags()); err != nil {
		return err
	}

	// Setup logger
	root.setupLogger()
	root.logDebugInfo()
	root.fs.SetLogger(root.logger)

	return nil
}

// setupLogger according to the options.
func (root *rootCommand) setupLogger() {
	logFile, logFileErr := log.NewLogFile(root.options.LogFilePath)
	root.logFile = logFile
	root.logger = log.NewCliLogger(root.cmd.OutOrStdout(), root.cmd.ErrOrStderr(), logFile, root.options.Verbose)
	root.cmd.SetOut(root.logger.InfoWriter())
	root.cmd.SetErr(root.logger.WarnWriter())

	// Warn if user specified log file and it cannot be opened
	if logFileErr != nil {
		root.logger.Warnf("Cannot open log file: %s", logFileErr)
	}
}

func (root *rootCommand) logDebugInfo() {
	root.logger.DebugWriter().WriteString(root.cmd.Version)
	root.logger.Debugf("Running command %v", os.Args)
	root.logger.DebugWriter().WriteString(root.options.Dump())
}
