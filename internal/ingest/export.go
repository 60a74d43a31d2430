package ingest

import (
	"encoding/csv"
	"io"
)

// WriteCSV serializes rows back into CSV form: one header line in the
// given column order, then one line per row. Cells absent from a row
// are written as empty strings.
func WriteCSV(w io.Writer, columns []string, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return err
	}

	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			cells[i] = row[col]
		}
		if err := cw.Write(cells); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
