package store

import (
	"strings"
	"testing"
	"time"
)

func TestStatusOrderClause(t *testing.T) {
	got := statusOrderClause()
	want := "CASE status WHEN 'success' THEN 0 WHEN 'processing' THEN 1 WHEN 'failed' THEN 2 ELSE 3 END"
	if got != want {
		t.Errorf("statusOrderClause() = %q, want %q", got, want)
	}
}

func TestBuildUploadFilter_Empty(t *testing.T) {
	wb := buildUploadFilter(UploadFilter{})

	if wb.clause() != "" {
		t.Errorf("clause = %q, want empty", wb.clause())
	}
	if len(wb.args) != 0 {
		t.Errorf("args = %v, want none", wb.args)
	}
	if wb.nextArgIndex() != 1 {
		t.Errorf("nextArgIndex = %d, want 1", wb.nextArgIndex())
	}
}

func TestBuildUploadFilter_All(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	wb := buildUploadFilter(UploadFilter{
		Status:    "success",
		Search:    "report",
		StartDate: start,
		EndDate:   end,
		MinSize:   100,
		MaxSize:   1000,
	})

	clause := wb.clause()
	wantParts := []string{
		"status = $1",
		"file_name ILIKE $2",
		"uploaded_at >= $3",
		"uploaded_at <= $4",
		"file_size >= $5",
		"file_size <= $6",
	}
	for _, p := range wantParts {
		if !strings.Contains(clause, p) {
			t.Errorf("clause %q missing %q", clause, p)
		}
	}
	if !strings.HasPrefix(clause, " WHERE ") {
		t.Errorf("clause %q does not start with WHERE", clause)
	}
	if strings.Count(clause, " AND ") != 5 {
		t.Errorf("clause %q should join 6 conditions with AND", clause)
	}
	if len(wb.args) != 6 {
		t.Fatalf("args count = %d, want 6", len(wb.args))
	}
	if wb.args[1] != "%report%" {
		t.Errorf("search arg = %v, want %%report%%", wb.args[1])
	}
	if wb.nextArgIndex() != 7 {
		t.Errorf("nextArgIndex = %d, want 7", wb.nextArgIndex())
	}
}

func TestBuildUploadFilter_SkipsUnset(t *testing.T) {
	wb := buildUploadFilter(UploadFilter{Search: "x", MaxSize: 500})

	clause := wb.clause()
	if strings.Contains(clause, "status") {
		t.Errorf("clause %q includes unset status filter", clause)
	}
	if !strings.Contains(clause, "file_name ILIKE $1") {
		t.Errorf("clause %q: search should be first placeholder", clause)
	}
	if !strings.Contains(clause, "file_size <= $2") {
		t.Errorf("clause %q: max size should be second placeholder", clause)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0}, // empty result has zero pages
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 10, 10},
		{101, 10, 11},
	}

	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestBuildAuditFilter(t *testing.T) {
	wb := buildAuditFilter(AuditFilter{Action: "upload", Status: "failure"})

	clause := wb.clause()
	if !strings.Contains(clause, "action = $1") {
		t.Errorf("clause %q missing action condition", clause)
	}
	if !strings.Contains(clause, "status = $2") {
		t.Errorf("clause %q missing status condition", clause)
	}
	if len(wb.args) != 2 {
		t.Errorf("args = %v, want 2 entries", wb.args)
	}
}
