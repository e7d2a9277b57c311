package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeongen/internal/telemetry"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dungeongen %s\n", telemetry.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
