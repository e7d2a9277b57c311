package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/dungeongen/internal/config"
	"github.com/samdwyer/dungeongen/internal/driver"
	"github.com/samdwyer/dungeongen/internal/logging"
	"github.com/samdwyer/dungeongen/internal/metrics"
	"github.com/samdwyer/dungeongen/internal/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "dungeongen",
	Short: "dungeongen procedurally generates 2-D dungeon layouts",
	Long: `dungeongen scatters random rectangular cells, pushes them apart until none overlap,
links the large ones with a relative neighbourhood graph and carves L-shaped corridors
between them, then rasterizes the result to a tile map.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML config file layered over the preset")
	flags.String("preset", config.DefaultPreset, "Embedded preset (small, medium, large)")
	flags.String("env-file", ".env", "Optional .env file with DUNGEONGEN_* overrides")
	flags.Uint64("seed", 0, "Random seed (0 picks one from the clock)")
	flags.Int("cells", 0, "Number of cells to seed")
	flags.Int("radius", 0, "Placement radius")
	flags.Int("min-side", 0, "Smallest cell side")
	flags.Int("max-side", 0, "Largest cell side")
	flags.Int("max-passes", 0, "Cap on separation passes (0 keeps the configured cap)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Bool("telemetry", false, "Export traces over OTLP")
}

// app bundles the dependencies shared by every subcommand.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	metrics  *metrics.Recorder
	driver   *driver.Driver
	shutdown func(context.Context) error
}

// newApp loads configuration and wires logging, telemetry, metrics and the driver.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logging.New(logging.ParseLevel(cfg.LogLevel)),
		metrics:  metrics.New(),
		shutdown: func(context.Context) error { return nil },
	}

	opts := []driver.Option{driver.WithLogger(a.logger), driver.WithMetrics(a.metrics)}
	if enabled, _ := cmd.Flags().GetBool("telemetry"); enabled {
		preset, _ := cmd.Flags().GetString("preset")
		shutdown, err := telemetry.Setup(cmd.Context(), cfg, telemetry.WithPreset(preset))
		if err != nil {
			a.logger.Warn("telemetry setup failed, continuing without traces", "error", err)
		} else {
			a.shutdown = shutdown
		}
	} else {
		opts = append(opts, driver.WithTracer(telemetry.NoopTracer()))
	}
	a.driver = driver.New(opts...)
	return a, nil
}

// close flushes telemetry.
func (a *app) close(ctx context.Context) {
	if err := a.shutdown(ctx); err != nil {
		a.logger.Error("telemetry shutdown failed", "error", err)
	}
}

// loadConfig merges config sources with any flags set on the command line.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()
	file, _ := flags.GetString("config")
	preset, _ := flags.GetString("preset")
	envFile, _ := flags.GetString("env-file")

	cfg, err := config.Load(config.Options{Preset: preset, File: file, EnvFile: envFile})
	if err != nil {
		return cfg, err
	}

	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"cells", &cfg.CellCount},
		{"radius", &cfg.Radius},
		{"min-side", &cfg.MinSide},
		{"max-side", &cfg.MaxSide},
		{"max-passes", &cfg.MaxPasses},
	}
	for _, f := range ints {
		if flags.Changed(f.name) {
			*f.dst, _ = flags.GetInt(f.name)
		}
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	return cfg, cfg.Validate()
}
