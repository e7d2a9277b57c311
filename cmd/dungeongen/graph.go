package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeongen/internal/driver"
	"github.com/samdwyer/dungeongen/internal/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the room connection graph",
	Long:  `Generates a dungeon and outputs a Mermaid diagram (graph LR) of the links between its rooms.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		run, err := a.driver.Generate(cmd.Context(), driver.ParamsFromConfig(a.cfg))
		if err != nil {
			return err
		}

		filler, _ := cmd.Flags().GetBool("filler")
		g := run.Generator
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(g.Cells(), g.Connections(), &graph.Overlay{KeptFiller: filler, Highlight: -1}))
		return nil
	},
}

func init() {
	graphCmd.Flags().Bool("filler", false, "Include kept filler cells as nodes")
	rootCmd.AddCommand(graphCmd)
}
