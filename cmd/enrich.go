package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civic-tools/district-cli/internal/enrich"
	"github.com/civic-tools/district-cli/internal/table"
)

var (
	enrichFile     string
	enrichSheet    string
	enrichLimit    int
	enrichDryRun   bool
	enrichNoCache  bool
	enrichChambers string
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill district and representative columns for every pending row",
	Long: `Reads an address table, looks up legislative districts for every row
whose "State House Rep." cell is still blank, and writes the enriched
table back in place. Ctrl-C finishes the current row and saves progress;
rerunning picks up where the last run stopped.

Examples:
  # Enrich the default table
  district-cli enrich

  # Preview how many rows a run would touch
  district-cli enrich --file voters.xlsx --sheet Addresses --dry-run

  # Re-run a small slice without the cache
  district-cli enrich --file voters.csv --limit 10 --no-cache`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		mode := "enrich"
		if enrichDryRun {
			mode = "local"
		}
		if err := cfg.Validate(mode); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tbl, err := table.Load(enrichFile, table.Options{Sheet: enrichSheet})
		if err != nil {
			return eris.Wrap(err, "enrich: load table")
		}

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "enrich: init store")
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "enrich: migrate store")
		}

		chambers, err := loadChambers(enrichChambers)
		if err != nil {
			return err
		}

		opts := enrich.RunOptions{Limit: enrichLimit, DryRun: enrichDryRun}

		var pw progress.Writer
		var tracker *progress.Tracker
		if !enrichDryRun {
			pw = progress.NewWriter()
			pw.SetOutputWriter(os.Stderr)
			pw.SetUpdateFrequency(100 * time.Millisecond)
			go pw.Render()
			// The tracker total is the size of this run's work slice,
			// known only once the first row reports in.
			opts.OnRow = func(processed, total int) {
				if tracker == nil {
					tracker = &progress.Tracker{Message: "enriching addresses", Total: int64(total)}
					pw.AppendTracker(tracker)
				}
				tracker.SetValue(int64(processed))
			}
		}

		enricher := enrich.New(tbl, newResolver(st, chambers, enrichNoCache), st, opts)

		stopNote := context.AfterFunc(ctx, func() {
			zap.L().Info("enrich: interrupt received, finishing current row")
		})
		result, runErr := enricher.Run(ctx)
		stopNote()

		if pw != nil {
			if tracker != nil {
				tracker.MarkAsDone()
			}
			pw.Stop()
		}

		if result != nil {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			_ = enc.Encode(result)
		}
		return runErr
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichFile, "file", "data/registered_addresses.csv", "address table to enrich (.csv or .xlsx)")
	enrichCmd.Flags().StringVar(&enrichSheet, "sheet", "", "worksheet name for xlsx files (default: first sheet)")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "max rows to process (0 = all pending)")
	enrichCmd.Flags().BoolVar(&enrichDryRun, "dry-run", false, "count pending rows without calling the API")
	enrichCmd.Flags().BoolVar(&enrichNoCache, "no-cache", false, "skip the lookup cache and always call the API")
	enrichCmd.Flags().StringVar(&enrichChambers, "chambers", "", "YAML file overriding chamber markers and terms")
	rootCmd.AddCommand(enrichCmd)
}
