package ingest

import (
	"errors"
	"testing"
)

func TestParse_Basic(t *testing.T) {
	data := []byte("name,email\nJohn,john@example.com\nJane,jane@example.com\n")

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	wantCols := []string{"name", "email"}
	if len(result.Columns) != 2 || result.Columns[0] != wantCols[0] || result.Columns[1] != wantCols[1] {
		t.Errorf("Columns = %v, want %v", result.Columns, wantCols)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Records count = %d, want 2", len(result.Records))
	}
	if result.Records[0].Line != 2 {
		t.Errorf("first record line = %d, want 2", result.Records[0].Line)
	}
	if result.Records[0].Row["name"] != "John" {
		t.Errorf(`Records[0]["name"] = %q, want "John"`, result.Records[0].Row["name"])
	}
	if result.Records[1].Row["email"] != "jane@example.com" {
		t.Errorf(`Records[1]["email"] = %q, want "jane@example.com"`, result.Records[1].Row["email"])
	}
	if len(result.Errors) != 0 {
		t.Errorf("Errors = %v, want none", result.Errors)
	}
}

func TestParse_EmptyRowExcludedAndReported(t *testing.T) {
	data := []byte("name,email\nJohn,john@example.com\n,\nJane,jane@example.com\n")

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(result.Records) != 2 {
		t.Errorf("Records count = %d, want 2", len(result.Records))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors count = %d, want 1", len(result.Errors))
	}
	if result.Errors[0].Row != 3 {
		t.Errorf("error row = %d, want 3", result.Errors[0].Row)
	}
	if result.Errors[0].Message != "Row contains only empty values" {
		t.Errorf("error message = %q", result.Errors[0].Message)
	}

	// Rows after the excluded one keep their original line numbers.
	if result.Records[1].Line != 4 {
		t.Errorf("second record line = %d, want 4", result.Records[1].Line)
	}
}

func TestParse_RowPlusErrorCountInvariant(t *testing.T) {
	data := []byte("a,b\n1,2\n,\n3,4\n,\n5,6\n")

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	dataLines := 5
	if got := len(result.Records) + len(result.Errors); got != dataLines {
		t.Errorf("records+errors = %d, want %d", got, dataLines)
	}
}

func TestParse_BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("name\nJohn\n")...)

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.Columns[0] != "name" {
		t.Errorf("Columns[0] = %q, want %q (BOM not stripped)", result.Columns[0], "name")
	}
}

func TestParse_RaggedRows(t *testing.T) {
	data := []byte("a,b\n1\n2,3,4\n")

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(result.Columns) != 3 {
		t.Fatalf("Columns = %v, want 3 columns", result.Columns)
	}
	if result.Columns[2] != "column_3" {
		t.Errorf("extra column name = %q, want column_3", result.Columns[2])
	}

	// Short row: missing cell defaults to empty.
	if got := result.Records[0].Row["b"]; got != "" {
		t.Errorf(`short row "b" = %q, want ""`, got)
	}
	// Long row: extra cell is reachable under the positional name.
	if got := result.Records[1].Row["column_3"]; got != "4" {
		t.Errorf(`long row "column_3" = %q, want "4"`, got)
	}
}

func TestParse_EmptyHeaderCells(t *testing.T) {
	data := []byte("a,,c\n1,2,3\n")

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if result.Columns[1] != "column_2" {
		t.Errorf("unnamed header cell = %q, want column_2", result.Columns[1])
	}
	if result.Records[0].Row["column_2"] != "2" {
		t.Errorf(`row["column_2"] = %q, want "2"`, result.Records[0].Row["column_2"])
	}
}

func TestParse_BlankLinesSkipped(t *testing.T) {
	data := []byte("name\n\nJohn\n\n\nJane\n")

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("Records count = %d, want 2", len(result.Records))
	}
	// Blank lines vanish before numbering; surviving lines are sequential.
	if result.Records[0].Line != 2 || result.Records[1].Line != 3 {
		t.Errorf("lines = %d, %d; want 2, 3", result.Records[0].Line, result.Records[1].Line)
	}
}

func TestParse_FatalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty input", []byte(""), ErrEmptyFile},
		{"whitespace only", []byte("   \n\t\n"), ErrEmptyFile},
		{"header only", []byte("name,email\n"), ErrNoDataRows},
		{"all rows empty", []byte("name,email\n,\n,\n"), ErrAllRowsEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_InvalidUTF8Sanitized(t *testing.T) {
	data := []byte("name\nJo\xffhn\n")

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := result.Records[0].Row["name"]
	if got == "Jo\xffhn" {
		t.Error("invalid UTF-8 byte survived sanitization")
	}
	if got == "" {
		t.Error("sanitization dropped the whole value")
	}
}

func TestParse_QuotedFields(t *testing.T) {
	data := []byte("name,notes\n\"Smith, John\",\"line1\nline2\"\n")

	result, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := result.Records[0].Row["name"]; got != "Smith, John" {
		t.Errorf(`name = %q, want "Smith, John"`, got)
	}
	if got := result.Records[0].Row["notes"]; got != "line1\nline2" {
		t.Errorf("notes = %q, embedded newline not preserved", got)
	}
}
