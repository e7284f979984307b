package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iris-research/iris/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of iris",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("iris %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
