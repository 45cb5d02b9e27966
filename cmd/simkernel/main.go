// Package main provides the simkernel devtools CLI: inspecting a registered
// module set's scheduler graph and running a bare simulation loop for a
// fixed number of frames, for local development and CI smoke tests.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "simkernel",
	Short:         "Inspect and drive the simulation kernel",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}
