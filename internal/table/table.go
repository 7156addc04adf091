// Package table loads, edits, and saves tabular address files.
//
// A Table preserves every column and row of the source file; enrichment
// only fills cells, so unknown columns survive a load/save round trip.
package table

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// Format identifies the on-disk encoding of a table file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Options configures loading.
type Options struct {
	Sheet string // xlsx sheet name; "" means the first sheet
}

// Table is an in-memory spreadsheet with a header row and data rows.
type Table struct {
	path   string
	format Format
	sheet  string
	header []string
	rows   [][]string
	colIdx map[string]int
}

// Load reads a CSV or XLSX file into memory, choosing the parser by
// file extension.
func Load(path string, opts Options) (*Table, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	var (
		header []string
		rows   [][]string
		sheet  string
	)
	switch format {
	case FormatXLSX:
		header, rows, sheet, err = loadXLSX(path, opts.Sheet)
	default:
		header, rows, err = loadCSV(path)
	}
	if err != nil {
		return nil, err
	}

	t := &Table{
		path:   path,
		format: format,
		sheet:  sheet,
		header: header,
		rows:   rows,
	}
	t.reindex()
	t.pad()
	return t, nil
}

func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("table: unsupported file extension %q", filepath.Ext(path))
	}
}

// normalize canonicalizes a header cell for lookup.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// reindex rebuilds the column lookup. The first occurrence of a
// duplicated header wins.
func (t *Table) reindex() {
	t.colIdx = make(map[string]int, len(t.header))
	for i, col := range t.header {
		key := normalize(col)
		if _, ok := t.colIdx[key]; !ok {
			t.colIdx[key] = i
		}
	}
}

// pad extends short rows so every row has a cell per header column.
func (t *Table) pad() {
	for i, row := range t.rows {
		for len(row) < len(t.header) {
			row = append(row, "")
		}
		t.rows[i] = row
	}
}

// Path returns the file the table was loaded from.
func (t *Table) Path() string { return t.path }

// Header returns the column names in file order.
func (t *Table) Header() []string { return t.header }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// ColumnIndex reports the position of a column, matching header text
// case-insensitively and ignoring surrounding whitespace.
func (t *Table) ColumnIndex(name string) (int, bool) {
	idx, ok := t.colIdx[normalize(name)]
	return idx, ok
}

// EnsureColumns appends any missing columns to the header, pads all
// rows, and returns the number added. Existing columns keep their
// original header text.
func (t *Table) EnsureColumns(names ...string) int {
	added := 0
	for _, name := range names {
		if _, ok := t.colIdx[normalize(name)]; ok {
			continue
		}
		t.header = append(t.header, name)
		t.colIdx[normalize(name)] = len(t.header) - 1
		added++
	}
	if added > 0 {
		t.pad()
	}
	return added
}

// Cell returns the value at (row, column). The second return is false
// when the column does not exist or the row is out of range.
func (t *Table) Cell(row int, column string) (string, bool) {
	idx, ok := t.colIdx[normalize(column)]
	if !ok || row < 0 || row >= len(t.rows) {
		return "", false
	}
	return t.rows[row][idx], true
}

// SetCell writes a value at (row, column).
func (t *Table) SetCell(row int, column, value string) error {
	idx, ok := t.colIdx[normalize(column)]
	if !ok {
		return eris.Errorf("table: unknown column %q", column)
	}
	if row < 0 || row >= len(t.rows) {
		return eris.Errorf("table: row %d out of range", row)
	}
	t.rows[row][idx] = value
	return nil
}

// Pending returns the indices of rows whose cell in the given column is
// empty after trimming whitespace. A missing column leaves every row
// pending.
func (t *Table) Pending(column string) []int {
	idx, ok := t.colIdx[normalize(column)]
	var pending []int
	for i, row := range t.rows {
		if !ok || strings.TrimSpace(row[idx]) == "" {
			pending = append(pending, i)
		}
	}
	return pending
}

// Save writes the table back to its source path. The file is written to
// a temporary sibling first and renamed into place, so an interrupt
// mid-write never truncates the original.
func (t *Table) Save() error {
	tmp, err := os.CreateTemp(filepath.Dir(t.path), "."+filepath.Base(t.path)+".*")
	if err != nil {
		return eris.Wrap(err, "table: create temp file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename succeeds

	werr := t.writeTo(tmp)
	if cerr := tmp.Close(); werr == nil && cerr != nil {
		werr = eris.Wrap(cerr, "table: close temp file")
	}
	if werr != nil {
		return werr
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return eris.Wrap(err, "table: chmod temp file")
	}
	return eris.Wrap(os.Rename(tmpPath, t.path), "table: rename temp file")
}

func (t *Table) writeTo(w io.Writer) error {
	switch t.format {
	case FormatXLSX:
		return writeXLSX(w, t.sheet, t.header, t.rows)
	default:
		return writeCSV(w, t.header, t.rows)
	}
}
