package table

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

func loadXLSX(path, sheetName string) ([]string, [][]string, string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, "", eris.Wrap(err, "table: open xlsx")
	}

	var sheet *xlsx.Sheet
	if sheetName != "" {
		s, ok := f.Sheet[sheetName]
		if !ok {
			return nil, nil, "", eris.Errorf("table: sheet %q not found", sheetName)
		}
		sheet = s
	} else {
		if len(f.Sheets) == 0 {
			return nil, nil, "", eris.Errorf("table: %s has no sheets", path)
		}
		sheet = f.Sheets[0]
	}

	if len(sheet.Rows) == 0 {
		return nil, nil, "", eris.Errorf("table: %s has no header row", path)
	}

	all := make([][]string, len(sheet.Rows))
	for i, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		all[i] = cells
	}
	return all[0], all[1:], sheet.Name, nil
}

func writeXLSX(w io.Writer, sheetName string, header []string, rows [][]string) error {
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet(sheetName)
	if err != nil {
		return eris.Wrap(err, "table: add sheet")
	}

	writeRow := func(cells []string) {
		r := sheet.AddRow()
		for _, v := range cells {
			r.AddCell().SetString(v)
		}
	}
	writeRow(header)
	for _, row := range rows {
		writeRow(row)
	}

	return eris.Wrap(f.Write(w), "table: write xlsx")
}
