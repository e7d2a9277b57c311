package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeongen/internal/driver"
	"github.com/samdwyer/dungeongen/internal/world"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a dungeon and print it as text",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		table, err := tileTable(cmd)
		if err != nil {
			return err
		}

		run, err := a.driver.Generate(cmd.Context(), driver.ParamsFromConfig(a.cfg))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprint(out, run.Generator.Rasterize(table).String())

		if stats, _ := cmd.Flags().GetBool("stats"); stats {
			g := run.Generator
			b := g.Bounds()
			fmt.Fprintf(out, "\nseed=%d cells=%d rooms=%d kept=%d corridors=%d passes=%d converged=%t bounds=(%d,%d)-(%d,%d)\n",
				run.Params.Seed, len(g.Cells()), g.RoomCount(), g.KeptCount(), len(g.Corridors()),
				g.Passes(), g.Converged(), b.Left, b.Top, b.Right, b.Bottom)
		}
		return nil
	},
}

// tileTable builds the tile table from the --tiles flag: three characters for
// void, walkable and wall.
func tileTable(cmd *cobra.Command) (world.TileTable, error) {
	symbols, _ := cmd.Flags().GetString("tiles")
	runes := []rune(symbols)
	if len(runes) != int(world.NumTileKinds) {
		return world.TileTable{}, fmt.Errorf("--tiles needs exactly %d characters (void, walkable, wall), got %q", world.NumTileKinds, symbols)
	}
	var table world.TileTable
	for i, r := range runes {
		table[i] = world.Tile(r)
	}
	return table, nil
}

func init() {
	generateCmd.Flags().Bool("stats", false, "Print a summary line after the map")
	generateCmd.Flags().String("tiles", " .#", "Symbols for void, walkable and wall tiles")
	rootCmd.AddCommand(generateCmd)
}
