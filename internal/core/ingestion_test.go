package core

import (
	"context"
	"testing"

	"github.com/lukewarren/csvault/internal/ingest"
)

func TestFormatErrors(t *testing.T) {
	errs := []ingest.ParseError{
		{Row: 3, Message: "Row contains only empty values"},
		{Row: 7, Message: "Duplicate of row 2"},
	}

	got := formatErrors(errs)
	want := []string{
		"Row 3: Row contains only empty values",
		"Row 7: Duplicate of row 2",
	}
	if len(got) != len(want) {
		t.Fatalf("formatErrors returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("formatErrors[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFormatErrors_EmptyIsNil(t *testing.T) {
	if got := formatErrors(nil); got != nil {
		t.Errorf("formatErrors(nil) = %v, want nil", got)
	}
}

func TestRunPipeline_DispatchesByExtension(t *testing.T) {
	// A CSV payload under a .csv name parses fine.
	if _, err := runPipeline("data.csv", []byte("a\n1\n"), ingest.Options{}); err != nil {
		t.Errorf("runPipeline(.csv) error = %v", err)
	}

	// The same bytes under .xlsx must go through the workbook decoder
	// and fail, proving the dispatch happened.
	if _, err := runPipeline("data.XLSX", []byte("a\n1\n"), ingest.Options{}); err == nil {
		t.Error("runPipeline(.xlsx) accepted CSV bytes, want decode error")
	}
}

func TestContextCarriers(t *testing.T) {
	ctx := context.Background()

	if got := IPAddressFromContext(ctx); got != "" {
		t.Errorf("IP from empty context = %q, want empty", got)
	}

	ctx = ContextWithIPAddress(ctx, "10.0.0.1")
	ctx = ContextWithUserAgent(ctx, "test-agent/1.0")

	if got := IPAddressFromContext(ctx); got != "10.0.0.1" {
		t.Errorf("IP = %q, want 10.0.0.1", got)
	}
	if got := UserAgentFromContext(ctx); got != "test-agent/1.0" {
		t.Errorf("UA = %q, want test-agent/1.0", got)
	}
}
