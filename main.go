// Package main is the entry point for the issuer CLI application.
package main

import (
	"fmt"
	"os"

	"github.com/danielolaszy/issuer/cmd"
	"github.com/danielolaszy/issuer/internal/logging"
)

// main executes the root command and exits non-zero on any error.
func main() {
	logging.Debug("starting issuer cli", "version", "1.0.0", "log_level", logging.LevelFromEnv())

	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
