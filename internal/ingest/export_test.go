package ingest

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteCSV_RoundTrip(t *testing.T) {
	original := []byte("name,email\nJohn,j@x.com\nJane,jane@x.com\n")

	parsed, err := Parse(original)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	rows := make([]Row, len(parsed.Records))
	for i, r := range parsed.Records {
		rows[i] = r.Row
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, parsed.Columns, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	reparsed, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}

	if len(reparsed.Records) != len(parsed.Records) {
		t.Errorf("round-trip rows = %d, want %d", len(reparsed.Records), len(parsed.Records))
	}
	for i := range parsed.Records {
		for _, col := range parsed.Columns {
			if got, want := reparsed.Records[i].Row[col], parsed.Records[i].Row[col]; got != want {
				t.Errorf("row %d col %s = %q, want %q", i, col, got, want)
			}
		}
	}
}

func TestWriteCSV_MissingCellsEmpty(t *testing.T) {
	rows := []Row{
		{"a": "1"}, // no "b"
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"a", "b"}, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "a,b" {
		t.Errorf("header = %q, want a,b", lines[0])
	}
	if lines[1] != "1," {
		t.Errorf("row = %q, want %q", lines[1], "1,")
	}
}

func TestWriteCSV_QuotesSpecialCharacters(t *testing.T) {
	rows := []Row{
		{"note": "hello, world"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, []string{"note"}, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"hello, world"`) {
		t.Errorf("output %q does not quote the comma cell", buf.String())
	}
}
