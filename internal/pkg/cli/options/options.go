// Package options manages the CLI option values from flags, ENV files and ENV variables.
package options

import (
	"fmt"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"github.com/enersys/pypsa2gems/internal/pkg/env"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/log"
)

const envPrefix = "PYPSA2GEMS_"

// Options manages parsed flags, ENV files and ENV variables.
type Options struct {
	envNaming              *env.NamingConvention
	envs                   *env.Map
	*orderedmap.OrderedMap // parsed options
	Verbose                bool   // verbose mode, print details to console
	LogFilePath            string // path to the log file
}

func NewOptions() *Options {
	return &Options{
		envNaming:  env.NewNamingConvention(envPrefix),
		OrderedMap: orderedmap.New(),
	}
}

// Load parses and merges all the sources of the option values.
// Value priority: 1. flag, 2. ENV variable, 3. ".env" file, 4. flag default.
func (o *Options) Load(logger log.Logger, osEnvs *env.Map, fs filesystem.Fs, flags *pflag.FlagSet) error {
	// Load ENVs from OS and ".env" files from the working directory.
	o.envs = env.LoadDotEnv(logger, osEnvs, fs, []string{"."})

	// Map flags to options, a flag value set on the command line wins
	// over the matching ENV variable.
	flags.VisitAll(func(flag *pflag.Flag) {
		envName := o.envNaming.FlagToEnv(flag.Name)
		if value, found := o.envs.Lookup(envName); found && !flag.Changed {
			o.Set(flag.Name, value)
		} else {
			o.Set(flag.Name, flag.Value.String())
		}
	})

	// Bind the common options
	o.Verbose = o.GetBool("verbose")
	o.LogFilePath = o.GetString("log-file")
	return nil
}

func (o *Options) GetBool(key string) bool {
	return cast.ToBool(o.GetOrNil(key))
}

func (o *Options) GetString(key string) string {
	return cast.ToString(o.GetOrNil(key))
}

func (o *Options) GetOrNil(key string) any {
	value, _ := o.Get(key)
	return value
}

// Dump the parsed options, for the debug log.
// Values are sanitized, the log writer emits one line per option.
func (o *Options) Dump() string {
	var out strings.Builder
	out.WriteString("Parsed options:\n")
	for _, key := range o.Keys() {
		value := log.Sanitize(cast.ToString(o.GetOrNil(key)))
		out.WriteString(fmt.Sprintf("  %s = \"%s\"\n", key, value))
	}
	return out.String()
}
