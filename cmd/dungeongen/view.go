package main

import (
	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeongen/internal/driver"
	"github.com/samdwyer/dungeongen/internal/ui"
	"github.com/samdwyer/dungeongen/internal/viewer"
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Watch a dungeon being generated step by step in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close(cmd.Context())

		palette, err := ui.NewPalette(a.cfg.Palette)
		if err != nil {
			return err
		}
		screen, err := ui.NewScreen()
		if err != nil {
			return err
		}

		v := viewer.New(screen, ui.NewRenderer(screen, palette), a.driver, driver.ParamsFromConfig(a.cfg), a.cfg.TickInterval)
		return v.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
