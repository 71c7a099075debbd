package main

import (
	"os"

	"github.com/enersys/pypsa2gems/internal/pkg/cli"
	"github.com/enersys/pypsa2gems/internal/pkg/env"
	"github.com/enersys/pypsa2gems/internal/pkg/filesystem/aferofs"
)

func main() {
	// Load ENVs from OS
	envs, err := env.FromOs()
	if err != nil {
		panic(err)
	}

	// Run command
	cmd := cli.NewRootCommand(os.Stdout, os.Stderr, envs, aferofs.NewLocalFs)
	os.Exit(cmd.Execute())
}
