package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lukewarren/csvault/internal/ingest"
)

// Upload lifecycle statuses.
const (
	StatusProcessing = "processing"
	StatusSuccess    = "success"
	StatusFailed     = "failed"
)

// statusRank orders statuses for listing: successes first, then
// in-flight uploads, then failures. Unknown statuses sort last.
var statusRank = map[string]int{
	StatusSuccess:    0,
	StatusProcessing: 1,
	StatusFailed:     2,
}

const statusRankOther = 3

// statusOrderClause renders the rank map into a SQL CASE expression
// usable inside ORDER BY.
func statusOrderClause() string {
	type entry struct {
		status string
		rank   int
	}
	entries := make([]entry, 0, len(statusRank))
	for s, r := range statusRank {
		entries = append(entries, entry{s, r})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].rank < entries[j].rank })

	var b strings.Builder
	b.WriteString("CASE status")
	for _, e := range entries {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", e.status, e.rank)
	}
	fmt.Fprintf(&b, " ELSE %d END", statusRankOther)
	return b.String()
}

// UploadRecord is one row of the uploads table.
type UploadRecord struct {
	ID          uuid.UUID    `json:"id"`
	FileName    string       `json:"fileName"`
	FileSize    int64        `json:"fileSize"`
	Status      string       `json:"status"`
	UploadedAt  time.Time    `json:"uploadedAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	TotalRows   *int         `json:"totalRows,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
	Message     string       `json:"message,omitempty"`
	Columns     []string     `json:"columns,omitempty"`
	Data        []ingest.Row `json:"data,omitempty"`
}

// UploadFilter narrows history queries. Zero values mean "no
// constraint": empty strings, zero times, and non-positive sizes are
// all ignored.
type UploadFilter struct {
	Status    string
	Search    string
	StartDate time.Time
	EndDate   time.Time
	MinSize   int64
	MaxSize   int64
}

// Page is one page of filtered upload history.
type Page struct {
	Records    []UploadRecord `json:"records"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

// Stats aggregates the uploads table for the statistics view.
type Stats struct {
	TotalUploads int64            `json:"totalUploads"`
	ByStatus     map[string]int64 `json:"byStatus"`
	TotalRows    int64            `json:"totalRows"`
	TotalBytes   int64            `json:"totalBytes"`
}
