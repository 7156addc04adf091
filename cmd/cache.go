package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/civic-tools/district-cli/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the lookup cache",
	Long:  "Commands for inspecting and purging cached Civic API responses.",
}

// -- cache stats --

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show lookup cache statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		stats, err := st.CountLookups(ctx)
		if err != nil {
			return eris.Wrap(err, "cache stats")
		}

		formatCacheStats(os.Stdout, stats)
		return nil
	},
}

// -- cache purge --

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired cache entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		deleted, err := st.DeleteExpiredLookups(ctx)
		if err != nil {
			return eris.Wrap(err, "cache purge")
		}

		fmt.Fprintf(os.Stdout, "Deleted %d expired lookups.\n", deleted)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}

// formatCacheStats writes cache totals to out.
func formatCacheStats(out io.Writer, stats *store.CacheStats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Cached lookups:\t%d\n", stats.Total)
	_, _ = fmt.Fprintf(w, "Fresh:\t%d\n", stats.Total-stats.Expired)
	_, _ = fmt.Fprintf(w, "Expired:\t%d\n", stats.Expired)
	_ = w.Flush()
}
