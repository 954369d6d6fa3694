package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"octls/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the octls version",
	Run: func(cmd *cobra.Command, args []string) {
		setupColor(cmd)
		fmt.Println("octls " + version.Colored())
		if version.GitCommit != "" {
			fmt.Printf("commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Printf("built:  %s\n", version.BuildDate)
		}
	},
}
