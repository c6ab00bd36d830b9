// Command ingest is the WRGPT hand collection and statistics CLI.
//
// Usage:
//
//	wrgpt-ingest initdb
//	wrgpt-ingest collect --workers 4
//	wrgpt-ingest collect --table d7
//	wrgpt-ingest stats "John Smith" "Jane Doe"
//	wrgpt-ingest average --active-only --top 10
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/railbird/wrgpt-data/internal/collector"
	"github.com/railbird/wrgpt-data/internal/config"
	"github.com/railbird/wrgpt-data/internal/db"
	"github.com/railbird/wrgpt-data/internal/report"
	"github.com/railbird/wrgpt-data/internal/roster"
	"github.com/railbird/wrgpt-data/internal/stats"
	"github.com/railbird/wrgpt-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "wrgpt-ingest",
		Short: "WRGPT hand collection and statistics CLI",
	}

	root.AddCommand(initdbCmd())
	root.AddCommand(collectCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(averageCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// initdb command
// --------------------------------------------------------------------------

func initdbCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := db.InitSchema(ctx, pool); err != nil {
					return fmt.Errorf("init schema: %w", err)
				}
				logger.Info("Schema initialized")
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// collect command
// --------------------------------------------------------------------------

func collectCmd() *cobra.Command {
	var (
		table   string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Fetch and store new hands from the game site",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool, logger)
				if workers == 0 {
					workers = cfg.CollectWorkers
				}
				coll := collector.New(cfg, st, logger)

				start := time.Now()
				var result collector.Result
				if table != "" {
					ts, err := findTable(ctx, coll, table)
					if err != nil {
						return err
					}
					result = coll.CollectTable(ctx, ts)
				} else {
					result = coll.CollectAll(ctx, workers)
				}

				logger.Info("Collect finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("collect error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "Collect a single table by ID; empty = all tables")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent table workers (0 = COLLECT_WORKERS)")
	return cmd
}

// findTable locates one table on the status page by ID.
func findTable(ctx context.Context, coll *collector.Collector, tableID string) (collector.TableStatus, error) {
	statuses, err := coll.FetchTableStatuses(ctx)
	if err != nil {
		return collector.TableStatus{}, fmt.Errorf("fetch table statuses: %w", err)
	}
	for _, ts := range statuses {
		if ts.TableID == tableID {
			return ts, nil
		}
	}
	return collector.TableStatus{}, fmt.Errorf("table %q not found on status page", tableID)
}

// --------------------------------------------------------------------------
// stats command
// --------------------------------------------------------------------------

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <player>...",
		Short: "Print positional statistics for the named players",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool, logger)
				corpus, err := st.LoadHands(ctx)
				if err != nil {
					return fmt.Errorf("load hands: %w", err)
				}
				all, err := stats.Calculate(corpus, args)
				if err != nil {
					return err
				}
				report.PrintStats(os.Stdout, all)
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// average command
// --------------------------------------------------------------------------

func averageCmd() *cobra.Command {
	var (
		activeOnly bool
		top        int
	)
	cmd := &cobra.Command{
		Use:   "average",
		Short: "Print the field-wide average statistics line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				st := store.New(pool, logger)

				var names []string
				var err error
				if activeOnly {
					names, err = roster.New(cfg.StandingsURL).FetchActive(ctx)
					if err != nil {
						return fmt.Errorf("fetch standings: %w", err)
					}
					logger.Info("Active roster fetched", "players", len(names))
				} else {
					names, err = st.ListPlayers(ctx)
					if err != nil {
						return fmt.Errorf("list players: %w", err)
					}
				}
				if len(names) == 0 {
					return fmt.Errorf("no players to average")
				}

				corpus, err := st.LoadHands(ctx)
				if err != nil {
					return fmt.Errorf("load hands: %w", err)
				}
				all, err := stats.Calculate(corpus, names)
				if err != nil {
					return err
				}

				avg, qualified, err := stats.Average(all)
				if err != nil {
					return err
				}
				report.PrintAverage(os.Stdout, avg, qualified)
				if top > 0 {
					report.PrintTopByVPIP(os.Stdout, all, top)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&activeOnly, "active-only", false, "Average only players still listed on the standings page")
	cmd.Flags().IntVar(&top, "top", 0, "Also print the N players with the highest VPIP")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runIngest handles config loading, DB connection, and context cancellation.
func runIngest(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
