package web

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestValidExtension(t *testing.T) {
	tests := []struct {
		fileName string
		want     bool
	}{
		{"data.csv", true},
		{"data.CSV", true},
		{"report.xlsx", true},
		{"report.XLSX", true},
		{"script.exe", false},
		{"noextension", false},
		{"archive.csv.gz", false},
		{".csv", true},
	}

	for _, tt := range tests {
		if got := validExtension(tt.fileName); got != tt.want {
			t.Errorf("validExtension(%q) = %v, want %v", tt.fileName, got, tt.want)
		}
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		original string
		want     string
	}{
		{"data.csv", "data_export.csv"},
		{"report.xlsx", "report_export.csv"},
		{"noext", "noext_export.csv"},
		{"two.dots.csv", "two.dots_export.csv"},
	}

	for _, tt := range tests {
		if got := exportFileName(tt.original); got != tt.want {
			t.Errorf("exportFileName(%q) = %q, want %q", tt.original, got, tt.want)
		}
	}
}

func TestParseHistoryQuery(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/uploads?status=success&search=jan&startDate=2024-01-01&endDate=2024-01-31&minSize=100&maxSize=5000&page=3&limit=25", nil)

	f, page, limit := parseHistoryQuery(r)

	if f.Status != "success" {
		t.Errorf("Status = %q, want success", f.Status)
	}
	if f.Search != "jan" {
		t.Errorf("Search = %q, want jan", f.Search)
	}
	if f.StartDate.IsZero() {
		t.Error("StartDate not parsed")
	}
	wantEnd := time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC)
	if !f.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want inclusive end of day %v", f.EndDate, wantEnd)
	}
	if f.MinSize != 100 || f.MaxSize != 5000 {
		t.Errorf("sizes = %d..%d, want 100..5000", f.MinSize, f.MaxSize)
	}
	if page != 3 || limit != 25 {
		t.Errorf("page/limit = %d/%d, want 3/25", page, limit)
	}
}

func TestParseHistoryQuery_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/uploads", nil)

	f, page, limit := parseHistoryQuery(r)

	if f.Status != "" || f.Search != "" {
		t.Errorf("filter = %+v, want empty", f)
	}
	if !f.StartDate.IsZero() || !f.EndDate.IsZero() {
		t.Error("dates should stay zero when absent")
	}
	if f.MinSize != 0 || f.MaxSize != 0 {
		t.Error("sizes should stay zero when absent")
	}
	if page != 1 || limit != 10 {
		t.Errorf("page/limit = %d/%d, want 1/10", page, limit)
	}
}

func TestParseHistoryQuery_Malformed(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/uploads?page=-2&limit=zero&minSize=abc&startDate=yesterday", nil)

	f, page, limit := parseHistoryQuery(r)

	if page != 1 || limit != 10 {
		t.Errorf("page/limit = %d/%d, want defaults 1/10", page, limit)
	}
	if f.MinSize != 0 {
		t.Errorf("MinSize = %d, want 0", f.MinSize)
	}
	if !f.StartDate.IsZero() {
		t.Error("malformed startDate should stay zero")
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.allow("1.2.3.4") {
			t.Fatalf("request %d denied, want allowed", i+1)
		}
	}
	if rl.allow("1.2.3.4") {
		t.Error("fourth request allowed, want denied")
	}
	if !rl.allow("5.6.7.8") {
		t.Error("different IP denied, want independent budget")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := newRateLimiter(1, 10*time.Millisecond)

	if !rl.allow("1.2.3.4") {
		t.Fatal("first request denied")
	}
	if rl.allow("1.2.3.4") {
		t.Fatal("second request allowed inside window")
	}

	time.Sleep(20 * time.Millisecond)
	if !rl.allow("1.2.3.4") {
		t.Error("request denied after window reset")
	}
}
