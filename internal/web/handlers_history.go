package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lukewarren/csvault/internal/store"
)

// parseHistoryQuery extracts filter and paging parameters from the
// query string. Unknown or malformed values fall back to defaults
// rather than failing the request.
func parseHistoryQuery(r *http.Request) (store.UploadFilter, int, int) {
	q := r.URL.Query()

	f := store.UploadFilter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	if t, err := time.Parse("2006-01-02", q.Get("startDate")); err == nil {
		f.StartDate = t
	}
	if t, err := time.Parse("2006-01-02", q.Get("endDate")); err == nil {
		// Inclusive end of day.
		f.EndDate = t.Add(24*time.Hour - time.Nanosecond)
	}
	if n, err := strconv.ParseInt(q.Get("minSize"), 10, 64); err == nil {
		f.MinSize = n
	}
	if n, err := strconv.ParseInt(q.Get("maxSize"), 10, 64); err == nil {
		f.MaxSize = n
	}

	page := intQuery(q.Get("page"), 1)
	limit := intQuery(q.Get("limit"), 10)
	return f, page, limit
}

func intQuery(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// handleHistory returns one page of filtered upload history.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	f, page, limit := parseHistoryQuery(r)

	result, err := s.service.History(r.Context(), f, page, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleAllUploads returns every record in status-priority order.
func (s *Server) handleAllUploads(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.AllUploads(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	if records == nil {
		records = []store.UploadRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// uploadID parses the {id} route parameter.
func uploadID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// handleGetUpload returns one record's metadata.
func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	id, err := uploadID(r)
	if err != nil {
		badRequest(w, "Upload id is not a valid UUID", "", "REC002")
		return
	}

	rec, err := s.service.Upload(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleGetUploadData returns the stored rows of a successful upload.
func (s *Server) handleGetUploadData(w http.ResponseWriter, r *http.Request) {
	id, err := uploadID(r)
	if err != nil {
		badRequest(w, "Upload id is not a valid UUID", "", "REC002")
		return
	}

	rec, err := s.service.UploadData(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"uploadId":  id,
		"fileName":  rec.FileName,
		"totalRows": rec.TotalRows,
		"columns":   rec.Columns,
		"data":      rec.Data,
	})
}

// handleDownloadOriginal streams the original uploaded bytes.
func (s *Server) handleDownloadOriginal(w http.ResponseWriter, r *http.Request) {
	id, err := uploadID(r)
	if err != nil {
		badRequest(w, "Upload id is not a valid UUID", "", "REC002")
		return
	}

	name, content, err := s.service.OriginalFile(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(content)
}

// handleExportCSV re-serializes the stored rows as a CSV download.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	id, err := uploadID(r)
	if err != nil {
		badRequest(w, "Upload id is not a valid UUID", "", "REC002")
		return
	}

	// Export against the record first so failures can still produce a
	// clean JSON error response.
	rec, err := s.service.UploadData(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", exportFileName(rec.FileName)))

	if _, err := s.service.ExportCSV(r.Context(), id, w); err != nil {
		// Headers already sent; log via respondError is not possible.
		return
	}
}

// exportFileName derives the download name for an export.
func exportFileName(original string) string {
	const suffix = "_export.csv"
	for i := len(original) - 1; i >= 0; i-- {
		if original[i] == '.' {
			return original[:i] + suffix
		}
	}
	return original + suffix
}

// handleDeleteUploads bulk deletes records by id.
func (s *Server) handleDeleteUploads(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []uuid.UUID `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "Request body is not valid JSON", "Send {\"ids\": [...]}", "REC003")
		return
	}
	if len(req.IDs) == 0 {
		badRequest(w, "No upload ids provided", "Send at least one id to delete", "REC003")
		return
	}

	count, err := s.service.Delete(r.Context(), req.IDs)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"deleted": count})
}

// handleStats returns aggregate upload statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
