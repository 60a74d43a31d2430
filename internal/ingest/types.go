// Package ingest implements the CSV ingestion pipeline: parsing with
// per-row error collection, duplicate detection, column remapping, type
// sniffing for previews, XLSX decoding, and CSV export.
//
// The package is pure data transformation. It knows nothing about HTTP
// or storage; callers feed it raw bytes and options and get structured
// results back.
package ingest

import "errors"

// Row holds one data row as a column-name → cell-value map.
// Column order lives at the dataset level (ParseResult.Columns);
// a Row on its own is unordered.
type Row map[string]string

// Record pairs a row with its 1-based line number in the source file.
// The header occupies line 1, so the first data row is line 2.
type Record struct {
	Line int
	Row  Row
}

// ParseError describes a row that was excluded during parsing or
// flagged by duplicate marking. Row is the 1-based source line number.
type ParseError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// DuplicateEntry records a row whose composite key matched an earlier
// row. DuplicateOf is the line number of the first (canonical) occurrence.
type DuplicateEntry struct {
	Row         int `json:"row"`
	DuplicateOf int `json:"duplicateOf"`
	Data        Row `json:"data"`
}

// ParseResult is the output of parsing one file.
type ParseResult struct {
	Columns []string
	Records []Record
	Errors  []ParseError
}

// Fatal parse errors. These mean no usable data could be extracted;
// anything less severe becomes a ParseError entry instead.
var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrNoDataRows   = errors.New("file contains a header row but no data rows")
	ErrAllRowsEmpty = errors.New("all data rows are empty")
)

const emptyRowMessage = "Row contains only empty values"
