package table

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
)

func loadCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "table: open csv")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrap(err, "table: read csv")
	}
	if len(records) == 0 {
		return nil, nil, eris.Errorf("table: %s has no header row", path)
	}
	return records[0], records[1:], nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "table: write csv header")
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "table: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "table: flush csv")
}
