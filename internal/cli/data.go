package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/iplstats/internal/adapters/ingest"
	"github.com/okian/iplstats/internal/adapters/repository"
	"github.com/okian/iplstats/internal/fixtures"
	"github.com/okian/iplstats/pkg/logger"
)

// ErrMissingFlag is returned when a required path flag is empty.
var ErrMissingFlag = errors.New("missing flag")

func newImportCommand(env *runtimeEnv) *cobra.Command {
	var matches, deliveries string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the matches and deliveries CSV files into the store",
		Long: `Read matches.csv and deliveries.csv, skip rows that fail validation,
drop deliveries of unknown matches and replace the store contents.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if matches == "" {
				matches = env.cfg.DataMatches
			}
			if deliveries == "" {
				deliveries = env.cfg.DataDeliveries
			}
			if matches == "" || deliveries == "" {
				return fmt.Errorf("%w: --matches and --deliveries are required", ErrMissingFlag)
			}
			ctx := cmd.Context()

			ds, err := ingest.LoadCSV(ctx, matches, deliveries)
			if err != nil {
				return err
			}
			store, err := openStore(ctx, env.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.ReplaceAll(ctx, ds.Matches, ds.Deliveries); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "matches:    %d imported, %d skipped\n", ds.MatchReport.Imported, ds.MatchReport.Skipped)
			_, _ = fmt.Fprintf(out, "deliveries: %d imported, %d skipped, %d orphaned\n",
				len(ds.Deliveries), ds.DeliveryReport.Skipped, ds.OrphanDeliveries)
			return nil
		},
	}
	cmd.Flags().StringVar(&matches, "matches", "", "Path to matches.csv (default data_matches)")
	cmd.Flags().StringVar(&deliveries, "deliveries", "", "Path to deliveries.csv (default data_deliveries)")
	return cmd
}

func newExportCommand(env *runtimeEnv) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored datasets as a Parquet snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				return fmt.Errorf("%w: --out is required", ErrMissingFlag)
			}
			ctx := cmd.Context()
			store, err := openStore(ctx, env.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			matches, err := store.Matches(ctx)
			if err != nil {
				return err
			}
			deliveries, err := store.Deliveries(ctx)
			if err != nil {
				return err
			}
			if err := ingest.WriteParquet(dir, matches, deliveries); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d matches and %d deliveries to %s\n", len(matches), len(deliveries), dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "out", "", "Snapshot directory")
	return cmd
}

func newLoadCommand(env *runtimeEnv) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Replace the store contents with a Parquet snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				dir = env.cfg.DataParquetDir
			}
			if dir == "" {
				return fmt.Errorf("%w: --in is required", ErrMissingFlag)
			}
			ctx := cmd.Context()
			matches, deliveries, err := ingest.ReadParquet(dir)
			if err != nil {
				return err
			}
			store, err := openStore(ctx, env.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.ReplaceAll(ctx, matches, deliveries); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "loaded %d matches and %d deliveries\n", len(matches), len(deliveries))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "in", "", "Snapshot directory (default data_parquet_dir)")
	return cmd
}

func newGenerateCommand(env *runtimeEnv) *cobra.Command {
	var (
		seasons int
		first   int
		seed    uint64
		workers int
		out     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic seasons",
		Long: `Generate deterministic synthetic seasons: a double round-robin per
season plus a final, with full ball-by-ball deliveries. The result replaces
the store contents, or is written as a Parquet snapshot with --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			start := time.Now()
			gen := fixtures.New(
				fixtures.WithSeed(seed),
				fixtures.WithSeasons(first, seasons),
				fixtures.WithWorkers(workers),
				fixtures.WithLogger(logger.Named("fixtures")),
			)
			matches, deliveries, err := gen.Generate(ctx)
			if err != nil {
				return err
			}

			if out != "" {
				if err := ingest.WriteParquet(out, matches, deliveries); err != nil {
					return err
				}
			} else {
				store, err := openStore(ctx, env.cfg)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				if err := store.ReplaceAll(ctx, matches, deliveries); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "generated %d matches and %d deliveries in %s\n",
				len(matches), len(deliveries), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().IntVar(&seasons, "seasons", 1, "Number of seasons")
	cmd.Flags().IntVar(&first, "first", firstSeason, "First season year")
	cmd.Flags().Uint64Var(&seed, "seed", 2008, "Random seed")
	cmd.Flags().IntVar(&workers, "workers", 8, "Concurrent match simulations")
	cmd.Flags().StringVar(&out, "out", "", "Write a Parquet snapshot here instead of the store")
	return cmd
}

func newMigrateCommand(env *runtimeEnv) *cobra.Command {
	var version int
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the SQL store schema",
		Long:  "Migrate a sqlite, postgres or mysql store. --version -1 is the latest schema and 0 rolls every migration back.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := repository.Migrate(cmd.Context(), env.cfg.Backend(), env.cfg.StoreDSN, version)
			if err != nil {
				return err
			}
			if !res.Changed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schema already at version %d\n", res.To)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "migrated schema from version %d to %d\n", res.From, res.To)
			return nil
		},
	}
	cmd.Flags().IntVar(&version, "version", repository.LatestVersion, "Target schema version")
	return cmd
}
