package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, ""},
		{"empty file", errors.New("file is empty"), "FILE005"},
		{"header only", errors.New("file contains a header row but no data rows"), "FILE006"},
		{"all rows empty", errors.New("all data rows are empty"), "FILE007"},
		{"file too large", errors.New("file too large: 200MB"), "FILE001"},
		{"no file", errors.New("no file provided"), "FILE004"},
		{"bad extension", errors.New("unsupported file type .exe"), "FILE008"},
		{"csv decode failure", fmt.Errorf("decode csv: %w", errors.New("parse error on line 3")), "FILE002"},
		{"xlsx open failure", fmt.Errorf("open xlsx: %w", errors.New("zip: not a valid zip file")), "FILE002"},
		{"not found sentinel", ErrNotFound, "REC001"},
		{"wrapped not found", fmt.Errorf("get: %w", ErrNotFound), "REC001"},
		{"limiter full", ErrTooManyUploads, "UPL001"},
		{"cancelled", errors.New("context canceled"), "UPL002"},
		{"deadline", errors.New("context deadline exceeded"), "UPL003"},
		{"db refused", errors.New("dial tcp: connection refused"), "DB001"},
		{"db reset", errors.New("read: connection reset by peer"), "DB002"},
		{"rate limited", errors.New("rate limit exceeded"), "RATE001"},
		{"unknown", errors.New("something inexplicable"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_CaseInsensitive(t *testing.T) {
	got := MapError(errors.New("FILE IS EMPTY"))
	if got.Code != "FILE005" {
		t.Errorf("Code = %q, want FILE005 for upper-case input", got.Code)
	}
}

func TestMapError_UnknownHasAction(t *testing.T) {
	got := MapError(errors.New("???"))
	if got.Message == "" || got.Action == "" {
		t.Error("fallback message must carry both message and action text")
	}
}
