package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knope-dev/knope-go/format"
	"github.com/knope-dev/knope-go/internal/vcsutil"
)

var (
	listTagsRepo   string
	listTagsFormat string
)

var listTagsCmd = &cobra.Command{
	Use:   "list-tags",
	Short: "List Git tags newest-first",
	Long: `List every tag in the repository, newest-first by creation time —
the same order the version engine folds tags into a package's tracked
version.

Output formats:
  - toon (default): Token-Oriented Object Notation
  - json: Standard JSON with indentation
  - json-compact: Minified JSON

Examples:
  knope list-tags
  knope list-tags --repo=../other-checkout --format=json`,
	RunE: runListTags,
}

func init() {
	listTagsCmd.Flags().StringVar(&listTagsRepo, "repo", ".", "Path to the Git repository")
	listTagsCmd.Flags().StringVar(&listTagsFormat, "format", "toon", "Output format: toon (default), json, json-compact")
	rootCmd.AddCommand(listTagsCmd)
}

func runListTags(cmd *cobra.Command, args []string) error {
	tags, err := vcsutil.Tags(listTagsRepo)
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}

	f, err := format.Parse(listTagsFormat)
	if err != nil {
		return err
	}
	outputBytes, err := format.Marshal(tags, f)
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Println(string(outputBytes))
	return nil
}
