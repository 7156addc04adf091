package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/civic-tools/district-cli/internal/model"
	"github.com/civic-tools/district-cli/internal/table"
)

var (
	statusFile  string
	statusSheet string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show enrichment progress for a table",
	Long:  "Counts enriched and pending rows in an address table. Reads the file only; no API calls, no database.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tbl, err := table.Load(statusFile, table.Options{Sheet: statusSheet})
		if err != nil {
			return eris.Wrap(err, "status: load table")
		}

		pending := len(tbl.Pending(model.ColumnStateHouseRep))
		formatStatus(os.Stdout, tbl.Path(), tbl.Len(), pending)
		formatFillCounts(os.Stdout, fillCounts(tbl))
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusFile, "file", "data/registered_addresses.csv", "address table to inspect (.csv or .xlsx)")
	statusCmd.Flags().StringVar(&statusSheet, "sheet", "", "worksheet name for xlsx files (default: first sheet)")
	rootCmd.AddCommand(statusCmd)
}

// formatStatus writes the table progress summary to out.
func formatStatus(out io.Writer, path string, total, pending int) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "File:\t%s\n", path)
	_, _ = fmt.Fprintf(w, "Rows:\t%d\n", total)
	_, _ = fmt.Fprintf(w, "Enriched:\t%d\n", total-pending)
	_, _ = fmt.Fprintf(w, "Pending:\t%d\n", pending)
	_ = w.Flush()
}

// chamberFill counts representative cells for one chamber. Cells can be
// filled unevenly because each jurisdiction is optional in a lookup
// response.
type chamberFill struct {
	Term    string
	Filled  int
	Missing int
}

// fillCounts computes per-chamber representative counts for the table.
func fillCounts(tbl *table.Table) []chamberFill {
	chambers := model.DefaultChambers()
	fills := make([]chamberFill, 0, len(model.Jurisdictions()))
	for _, j := range model.Jurisdictions() {
		_, repCol := j.Columns()
		missing := len(tbl.Pending(repCol))
		fills = append(fills, chamberFill{
			Term:    chambers[j].Term,
			Filled:  tbl.Len() - missing,
			Missing: missing,
		})
	}
	return fills
}

// formatFillCounts renders the per-chamber breakdown as a table.
func formatFillCounts(out io.Writer, fills []chamberFill) {
	t := prettytable.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(prettytable.StyleRounded)
	t.AppendHeader(prettytable.Row{"Chamber", "Filled", "Missing"})
	for _, f := range fills {
		t.AppendRow(prettytable.Row{f.Term, f.Filled, f.Missing})
	}
	t.Render()
}
