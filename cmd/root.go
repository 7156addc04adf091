package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/civic-tools/district-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "district-cli",
	Short: "Enrich address tables with legislative districts",
	Long:  "Looks up state house, state senate, and US House districts for street addresses via the Google Civic Information API and writes district and representative columns back into CSV or XLSX tables.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
