package commands

import (
	"fmt"
	"os"

	"github.com/simonhull/firebird-suite/fledge/output"
	"github.com/simonhull/schemadrift/internal/schema"
	"github.com/spf13/cobra"
)

// FmtCmd creates and returns the 'fmt' command.
func FmtCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt <schema>",
		Short: "Canonicalize a schema file",
		Long: `Parse a schema file and print it in canonical form: two-space
indentation, attributes in a fixed order, comments and blank lines
dropped. Re-parsing the output yields the same document.

With -w the file is rewritten in place instead of printed.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			src, err := os.ReadFile(args[0])
			if err != nil {
				output.Error(fmt.Sprintf("Failed to read schema: %v", err))
				os.Exit(1)
			}

			doc, err := schema.Parse(src)
			if err != nil {
				output.Error(fmt.Sprintf("%s: %v", args[0], err))
				os.Exit(1)
			}

			canonical := doc.Format()
			if write {
				if err := os.WriteFile(args[0], []byte(canonical), 0o644); err != nil {
					output.Error(fmt.Sprintf("Failed to write schema: %v", err))
					os.Exit(1)
				}
				output.Success(fmt.Sprintf("Formatted %s", args[0]))
				return
			}
			fmt.Fprint(cmd.OutOrStdout(), canonical)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite the file in place instead of printing")

	return cmd
}
