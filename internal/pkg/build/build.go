// Package build provides information about the built binary.
// The values are set during the build by the -ldflags option.
package build

const DevVersionValue = "dev"

var (
	BuildVersion = DevVersionValue
	BuildDate    = "-"
	GitCommit    = "-"
)
