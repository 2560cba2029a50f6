// Package commands wires the schemadrift core to the outside world:
// cobra commands, file reads, terminal rendering, and exit codes. The
// core packages stay free of I/O.
package commands

import (
	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/simonhull/schemadrift"
	"github.com/spf13/cobra"
)

// RootCmd creates and returns the root command for the schemadrift CLI.
func RootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "schemadrift",
		Short: "Detect structural drift between two schema documents",
		Long: `Schemadrift compares two versions of a declarative data-model schema
(a reference and a target that must stay behaviorally compatible with it)
and reports every discrepancy that could break code generation, queries,
or deployment.

Findings are deterministic and explainable: each one names the model or
enum, the field or variant, the source lines involved, and how to fix it.`,
		Version: schemadrift.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	return cmd
}
