package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/civic-tools/district-cli/internal/model"
)

var (
	lookupJSON     bool
	lookupNoCache  bool
	lookupChambers string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <address>",
	Short: "Look up districts for a single address",
	Long: `Resolves one street address to its legislative districts and
representatives without touching any table file.

Examples:
  district-cli lookup "100 E Broad St, Columbus, OH 43215"
  district-cli lookup --json "100 E Broad St, Columbus, OH 43215"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("lookup"); err != nil {
			return err
		}
		ctx := cmd.Context()

		row, err := model.NewRow(args[0])
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "lookup: init store")
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "lookup: migrate store")
		}

		chambers, err := loadChambers(lookupChambers)
		if err != nil {
			return err
		}
		resolver := newResolver(st, chambers, lookupNoCache)

		districts, cached, err := resolver.Resolve(ctx, row.Address)
		if err != nil {
			return eris.Wrapf(err, "lookup: %s", row.Address)
		}

		if lookupJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(lookupResponse{
				Row:    row.WithDistricts(districts, resolver.Chambers()),
				Cached: cached,
			})
		}

		formatLookup(os.Stdout, districts, resolver.Chambers())
		return nil
	},
}

func init() {
	lookupCmd.Flags().BoolVar(&lookupJSON, "json", false, "print the result as JSON")
	lookupCmd.Flags().BoolVar(&lookupNoCache, "no-cache", false, "skip the lookup cache and always call the API")
	lookupCmd.Flags().StringVar(&lookupChambers, "chambers", "", "YAML file overriding chamber markers and terms")
	rootCmd.AddCommand(lookupCmd)
}

// lookupResponse is the JSON shape shared by the lookup command and the
// /lookup endpoint.
type lookupResponse struct {
	model.Row
	Cached bool `json:"cached"`
}

// formatLookup renders the resolved seats as a table, one row per
// chamber. Chambers the address did not match show a dash.
func formatLookup(out io.Writer, districts model.Districts, chambers model.ChamberSet) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Chamber", "District", "Representative", "Party"})

	for _, j := range model.Jurisdictions() {
		term := chambers[j].Term
		seat, ok := districts[j]
		if !ok {
			t.AppendRow(table.Row{term, "-", "-", "-"})
			continue
		}
		t.AppendRow(table.Row{term, seat.District, seat.Official, seat.Party})
	}

	t.Render()
}
