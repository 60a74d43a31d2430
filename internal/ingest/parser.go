package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// Parse decodes CSV bytes into columns, records and per-row errors.
//
// The first non-blank line is the header (line 1); data rows are
// numbered from 2. Blank lines are dropped by the csv reader before
// numbering, so line numbers are sequential over the surviving lines.
// Ragged rows never fail: missing cells become "", extra cells get
// positional column_N names. A row whose every cell is empty is
// excluded and reported as a ParseError.
//
// Parse returns an error only when no usable data exists at all:
// empty input, a header with no data lines, or all data rows empty.
func Parse(data []byte) (*ParseResult, error) {
	data = sanitizeUTF8(stripBOM(data))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	raw, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	return buildResult(raw)
}

// buildResult converts raw tabular data (header + data rows) into a
// ParseResult. Shared by the CSV and XLSX entry points.
func buildResult(raw [][]string) (*ParseResult, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyFile
	}
	if len(raw) == 1 {
		return nil, ErrNoDataRows
	}

	columns := make([]string, len(raw[0]))
	for j, name := range raw[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			name = positionalName(j)
		}
		columns[j] = name
	}

	result := &ParseResult{Columns: columns}

	for i, cells := range raw[1:] {
		line := i + 2

		if allEmpty(cells) {
			result.Errors = append(result.Errors, ParseError{
				Row:     line,
				Message: emptyRowMessage,
			})
			continue
		}

		row := make(Row, len(result.Columns))
		for j, col := range result.Columns {
			if j < len(cells) {
				row[col] = cells[j]
			} else {
				row[col] = ""
			}
		}

		// Extra cells beyond the header get positional names,
		// widening the dataset on first sight.
		for j := len(result.Columns); j < len(cells); j++ {
			name := positionalName(j)
			result.Columns = append(result.Columns, name)
			row[name] = cells[j]
		}

		result.Records = append(result.Records, Record{Line: line, Row: row})
	}

	if len(result.Records) == 0 {
		return nil, ErrAllRowsEmpty
	}

	return result, nil
}

// positionalName names a column by its 1-based position.
func positionalName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
