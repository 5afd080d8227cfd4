package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags).
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "knope",
	Short: "Versioning engine CLI",
	Long: `knope computes the next version for one or more packages from
conventional commits and changeset files, rewrites every versioned file
in place, and either prints or executes the resulting plan.

Examples:
  knope plan
  knope plan --execute
  knope list-tags
  knope parse-commits --since=v0.3.0
  knope validate-config
  knope version`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("knope %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
