package ingest

import "fmt"

// Duplicate handling policies.
const (
	HandleSkip = "skip"
	HandleKeep = "keep"
	HandleMark = "mark"
)

// Options controls the ingestion pipeline. The zero value parses with
// no duplicate detection and no column remapping.
type Options struct {
	DetectDuplicates bool              `json:"detectDuplicates"`
	DuplicateColumns []string          `json:"duplicateColumns"`
	HandleDuplicates string            `json:"handleDuplicates"`
	ColumnMapping    map[string]string `json:"columnMapping"`
}

// Result is the pipeline output for one file.
type Result struct {
	Columns    []string
	Rows       []Row
	Errors     []ParseError
	Duplicates []DuplicateEntry
}

// Run parses raw CSV bytes and applies the configured processing
// steps. Only the parse step can fail; everything downstream reports
// through the Errors and Duplicates slices.
func Run(data []byte, opts Options) (*Result, error) {
	parsed, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return Process(parsed, opts), nil
}

// Process applies duplicate detection, the duplicate policy, and
// column remapping to an already-parsed dataset.
//
// Policies: "skip" drops duplicate rows, "mark" keeps them and appends
// a ParseError naming the canonical row, anything else keeps them
// silently.
func Process(parsed *ParseResult, opts Options) *Result {
	columns := parsed.Columns
	records := parsed.Records
	errs := parsed.Errors

	var duplicates []DuplicateEntry
	if opts.DetectDuplicates {
		var unique []Record
		duplicates, unique = Detect(records, opts.DuplicateColumns, columns)

		switch opts.HandleDuplicates {
		case HandleSkip:
			records = unique
		case HandleMark:
			for _, d := range duplicates {
				errs = append(errs, ParseError{
					Row:     d.Row,
					Message: fmt.Sprintf("Duplicate of row %d", d.DuplicateOf),
				})
			}
		}
	}

	columns, records = MapColumns(columns, records, opts.ColumnMapping)

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = rec.Row
	}

	return &Result{
		Columns:    columns,
		Rows:       rows,
		Errors:     errs,
		Duplicates: duplicates,
	}
}
