package ingest

// MapColumns renames columns according to mapping (old name → new
// name). Columns absent from the mapping keep their names; cell values
// are untouched and no columns are added or removed. An empty mapping
// returns the inputs unchanged.
func MapColumns(columns []string, records []Record, mapping map[string]string) ([]string, []Record) {
	if len(mapping) == 0 {
		return columns, records
	}

	mapped := make([]string, len(columns))
	for i, col := range columns {
		if newName, ok := mapping[col]; ok {
			mapped[i] = newName
		} else {
			mapped[i] = col
		}
	}

	out := make([]Record, len(records))
	for i, rec := range records {
		row := make(Row, len(rec.Row))
		for col, val := range rec.Row {
			if newName, ok := mapping[col]; ok {
				row[newName] = val
			} else {
				row[col] = val
			}
		}
		out[i] = Record{Line: rec.Line, Row: row}
	}

	return mapped, out
}
