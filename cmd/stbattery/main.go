package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"spacetime/adapters/battery"
	"spacetime/adapters/excel"
	"spacetime/adapters/rng"
	"spacetime/adapters/stats/interaction"
	"spacetime/domain/events"
	"spacetime/internal/config"
	"spacetime/internal/report"
	"spacetime/ports"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "stbattery",
		Short: "Space-time interaction tests for point event data",
		Long: `Run space-time interaction tests (Knox, local Knox, Mantel,
Jacquez k-NN, modified Knox) over a point event dataset.

Events are read from an .xlsx or .csv file with x, y, and time columns.
Defaults come from the environment (or a .env file); flags override.`,
	}

	rootCmd.AddCommand(
		newBatteryCmd(cfg),
		newKnoxCmd(cfg),
		newLocalKnoxCmd(cfg),
		newMantelCmd(cfg),
		newJacquezCmd(cfg),
		newModKnoxCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// testFlags holds the flag values shared by the subcommands.
type testFlags struct {
	delta        float64
	tau          float64
	k            int
	permutations int
	seed         int64
	keep         bool
}

func (f *testFlags) register(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().Float64Var(&f.delta, "delta", cfg.Delta, "Spatial threshold")
	cmd.Flags().Float64Var(&f.tau, "tau", cfg.Tau, "Temporal threshold")
	cmd.Flags().IntVar(&f.k, "k", cfg.K, "Nearest neighbors to consider")
	cmd.Flags().IntVar(&f.permutations, "permutations", cfg.Permutations, "Permutation count for pseudo p-values")
	cmd.Flags().Int64Var(&f.seed, "seed", cfg.Seed, "Random seed for deterministic permutations")
	cmd.Flags().BoolVar(&f.keep, "keep", cfg.Keep, "Keep the simulated null distribution")
}

// loadEvents reads the event set named by the positional arg, falling
// back to the configured EVENTS_FILE.
func loadEvents(ctx context.Context, cfg *config.Config, args []string) (*events.EventSet, error) {
	file := cfg.EventsFile
	if len(args) > 0 {
		file = args[0]
	}
	if file == "" {
		return nil, fmt.Errorf("no events file given (pass a path or set EVENTS_FILE)")
	}
	reader := excel.NewEventReader(file, cfg.XColumn, cfg.YColumn, cfg.TimeColumn, cfg.InferTimestamp)
	return reader.ReadEvents(ctx)
}

// seededStream returns a named deterministic generator for a single
// test subcommand. The names match those used by the battery so a
// lone test reproduces its battery counterpart.
func seededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	return rng.New().SeededStream(ctx, name, seed)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func newBatteryCmd(cfg *config.Config) *cobra.Command {
	var flags testFlags
	var reportFile, htmlFile string

	cmd := &cobra.Command{
		Use:   "battery [events-file]",
		Short: "Run the full test battery",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := loadEvents(ctx, cfg, args)
			if err != nil {
				return err
			}

			var runner ports.BatteryPort = battery.New(rng.New())
			rep, err := runner.Run(ctx, set, ports.BatteryOptions{
				Delta:        flags.delta,
				Tau:          flags.tau,
				K:            flags.k,
				Permutations: flags.permutations,
				Keep:         flags.keep,
				Scon:         cfg.Scon,
				Spow:         cfg.Spow,
				Tcon:         cfg.Tcon,
				Tpow:         cfg.Tpow,
				Seed:         flags.seed,
			})
			if err != nil {
				return err
			}

			if reportFile != "" {
				if err := os.WriteFile(reportFile, []byte(report.Markdown(rep)), 0644); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
			}
			if htmlFile != "" {
				if err := os.WriteFile(htmlFile, []byte(report.HTML(rep)), 0644); err != nil {
					return fmt.Errorf("failed to write HTML report: %w", err)
				}
			}
			return printJSON(rep)
		},
	}

	flags.register(cmd, cfg)
	cmd.Flags().StringVar(&reportFile, "report", cfg.ReportFile, "Write a Markdown report to this path")
	cmd.Flags().StringVar(&htmlFile, "html", cfg.ReportHTML, "Write an HTML report to this path")
	return cmd
}

func newKnoxCmd(cfg *config.Config) *cobra.Command {
	var flags testFlags

	cmd := &cobra.Command{
		Use:   "knox [events-file]",
		Short: "Run the global Knox test",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := loadEvents(ctx, cfg, args)
			if err != nil {
				return err
			}
			stream, err := seededStream(ctx, "knox", flags.seed)
			if err != nil {
				return err
			}
			res, err := interaction.Knox(set, flags.delta, flags.tau, flags.permutations, flags.keep, stream)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}

	flags.register(cmd, cfg)
	return cmd
}

func newLocalKnoxCmd(cfg *config.Config) *cobra.Command {
	var flags testFlags

	cmd := &cobra.Command{
		Use:   "local-knox [events-file]",
		Short: "Run the local Knox test",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := loadEvents(ctx, cfg, args)
			if err != nil {
				return err
			}
			stream, err := seededStream(ctx, "local-knox", flags.seed)
			if err != nil {
				return err
			}
			res, err := interaction.KnoxLocal(set, flags.delta, flags.tau, flags.permutations, flags.keep, stream)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}

	flags.register(cmd, cfg)
	return cmd
}

func newMantelCmd(cfg *config.Config) *cobra.Command {
	var flags testFlags
	var scon, spow, tcon, tpow float64

	cmd := &cobra.Command{
		Use:   "mantel [events-file]",
		Short: "Run the standardized Mantel test",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := loadEvents(ctx, cfg, args)
			if err != nil {
				return err
			}
			stream, err := seededStream(ctx, "mantel", flags.seed)
			if err != nil {
				return err
			}
			res, err := interaction.Mantel(set, flags.permutations, scon, spow, tcon, tpow, stream)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}

	flags.register(cmd, cfg)
	cmd.Flags().Float64Var(&scon, "scon", cfg.Scon, "Spatial distance transform constant")
	cmd.Flags().Float64Var(&spow, "spow", cfg.Spow, "Spatial distance transform power")
	cmd.Flags().Float64Var(&tcon, "tcon", cfg.Tcon, "Temporal distance transform constant")
	cmd.Flags().Float64Var(&tpow, "tpow", cfg.Tpow, "Temporal distance transform power")
	return cmd
}

func newJacquezCmd(cfg *config.Config) *cobra.Command {
	var flags testFlags

	cmd := &cobra.Command{
		Use:   "jacquez [events-file]",
		Short: "Run the Jacquez k-nearest-neighbor test",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := loadEvents(ctx, cfg, args)
			if err != nil {
				return err
			}
			stream, err := seededStream(ctx, "jacquez", flags.seed)
			if err != nil {
				return err
			}
			res, err := interaction.Jacquez(set, flags.k, flags.permutations, stream)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}

	flags.register(cmd, cfg)
	return cmd
}

func newModKnoxCmd(cfg *config.Config) *cobra.Command {
	var flags testFlags

	cmd := &cobra.Command{
		Use:   "modknox [events-file]",
		Short: "Run Baker's modified Knox test",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			set, err := loadEvents(ctx, cfg, args)
			if err != nil {
				return err
			}
			stream, err := seededStream(ctx, "modified-knox", flags.seed)
			if err != nil {
				return err
			}
			res, err := interaction.ModifiedKnox(set, flags.delta, flags.tau, flags.permutations, flags.keep, stream)
			if err != nil {
				return err
			}
			return printJSON(res)
		},
	}

	flags.register(cmd, cfg)
	return cmd
}
