package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enersys/pypsa2gems/internal/pkg/filesystem"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem/aferofs"
	"github.com/enersys/pypsa2gems/internal/pkg/log"
)

func TestLoadDotEnv(t *testing.T) {
	t.Parallel()
	// Memory fs
	logger := log.NewDebugLogger()
	fs := aferofs.NewMemoryFs(logger)

	// Write envs to file
	osEnvs := Empty()
	osEnvs.Set(`FOO1`, `BAR1`)
	osEnvs.Set(`OS_ONLY`, `123`)
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile(".env.local", "FOO1=BAR2\nFOO2=BAR2\n")))
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile(".env", "FOO1=BAZ\nFOO3=BAR3\n")))

	// Load envs
	logger.Truncate()
	envs := LoadDotEnv(logger, osEnvs, fs, []string{"."})

	// Assert, existing keys take precedence
	assert.Equal(t, map[string]string{
		"OS_ONLY": "123",
		"FOO1":    "BAR1",
		"FOO2":    "BAR2",
		"FOO3":    "BAR3",
	}, envs.ToMap())
	assert.Equal(t, "INFO  Loaded env file \".env.local\"\nINFO  Loaded env file \".env\"\n", logger.InfoMessages())
}

func TestLoadDotEnv_Invalid(t *testing.T) {
	t.Parallel()
	// Memory fs
	logger := log.NewDebugLogger()
	fs := aferofs.NewMemoryFs(logger)

	// Write envs to file
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile(".env.local", "invalid")))

	// Load envs
	logger.Truncate()
	envs := LoadDotEnv(logger, Empty(), fs, []string{"."})

	// Assert
	assert.Equal(t, map[string]string{}, envs.ToMap())
	assert.Contains(t, logger.WarnMessages(), "cannot parse env file \".env.local\"")
}
