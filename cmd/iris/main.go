// Package main is the entry point for the iris CLI: researcher record
// fusion, indexing and the ranked retrieval API server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base command for the iris CLI.
var rootCmd = &cobra.Command{
	Use:   "iris",
	Short: "Researcher record fusion and ranked retrieval",
	Long: `iris fuses per-source researcher records into a canonical corpus,
indexes researcher profiles into a Redis vector index, and serves
weighted semantic search over the result.

Corpus construction is a subcommand (ingest); the API server is another
(serve). Both read the same YAML configuration, selected by ENV.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
