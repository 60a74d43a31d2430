package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lukewarren/csvault/internal/store"
)

// handleAuditLog returns filtered, paginated audit entries newest
// first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := store.AuditFilter{
		Action: q.Get("action"),
		Status: q.Get("status"),
	}
	if id, err := uuid.Parse(q.Get("uploadId")); err == nil {
		f.UploadID = &id
	}
	if t, err := time.Parse("2006-01-02", q.Get("startDate")); err == nil {
		f.StartDate = t
	}
	if t, err := time.Parse("2006-01-02", q.Get("endDate")); err == nil {
		f.EndDate = t.Add(24*time.Hour - time.Nanosecond)
	}

	limit := intQuery(q.Get("limit"), store.DefaultAuditLimit)
	page := intQuery(q.Get("page"), 1)
	offset := (page - 1) * limit

	entries, total, err := s.service.AuditLog(r.Context(), f, limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if entries == nil {
		entries = []store.AuditEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
