package main

import (
	"os"

	"github.com/simonhull/schemadrift/internal/commands"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.CheckCmd())
	rootCmd.AddCommand(commands.FmtCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
