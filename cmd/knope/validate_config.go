package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/knope-dev/knope-go/internal/config"
)

var validateConfigPath string

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate knope.toml",
	Long: `Validate a knope.toml configuration file: that it parses, and
that every configured package names at least one versioned file.

Examples:
  knope validate-config
  knope validate-config --config=./other/knope.toml`,
	RunE: runValidateConfig,
}

func init() {
	validateConfigCmd.Flags().StringVar(&validateConfigPath, "config", "knope.toml", "Path to the configuration file")
	rootCmd.AddCommand(validateConfigCmd)
}

func runValidateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(validateConfigPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", validateConfigPath, err)
	}

	if len(cfg.Packages) == 0 {
		return fmt.Errorf("%s declares no packages", validateConfigPath)
	}

	names := make([]string, 0, len(cfg.Packages))
	for name := range cfg.Packages {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []string
	for _, name := range names {
		pkg := cfg.Packages[name]
		if len(pkg.VersionedFiles) == 0 {
			errs = append(errs, fmt.Sprintf("package %q declares no versioned_files", name))
		}
		for _, vf := range pkg.VersionedFiles {
			if vf.Path == "" {
				errs = append(errs, fmt.Sprintf("package %q has a versioned_files entry with no path", name))
			}
		}
	}

	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "%s is invalid:\n", validateConfigPath)
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  ✗ %s\n", e)
		}
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}

	fmt.Printf("✓ %s is valid (%d package(s))\n", validateConfigPath, len(cfg.Packages))
	return nil
}
