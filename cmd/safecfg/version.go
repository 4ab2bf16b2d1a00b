package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/safecfg-dev/safecfg/internal/version"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of safecfg",
	Run: func(_ *cobra.Command, _ []string) {
		info := version.Get()
		fmt.Printf("safecfg version %s\n", info.Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
