// Command knope is the versioning-engine CLI: it plans and (optionally)
// executes version bumps, release notes, and tags for one or more
// packages described by a knope.toml.
//
// Usage:
//
//	knope plan
//	knope plan --package api --execute
//	knope list-tags
//	knope parse-commits --since=v0.3.0
//	knope validate-config
//	knope version
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
