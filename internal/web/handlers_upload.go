package web

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/lukewarren/csvault/internal/core"
	"github.com/lukewarren/csvault/internal/ingest"
)

var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
}

// readUploadedFile extracts and validates the multipart "file" part.
// Returns the file name and its bytes, or writes a 4xx response and
// returns ok=false.
func (s *Server) readUploadedFile(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		badRequest(w, "File exceeds the maximum size limit",
			"Split the file into smaller chunks", "FILE001")
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "No file was selected",
			"Please select a CSV file to upload", "FILE004")
		return "", nil, false
	}
	defer file.Close()

	if !validExtension(header.Filename) {
		badRequest(w, "This file type is not supported",
			"Upload a .csv or .xlsx file", "FILE008")
		return "", nil, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, r, err)
		return "", nil, false
	}

	return header.Filename, data, true
}

// validExtension reports whether the file name carries an ingestable
// extension.
func validExtension(fileName string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(fileName))]
}

// parseUploadOptions decodes the optional "options" form part.
func parseUploadOptions(r *http.Request) (ingest.Options, error) {
	var opts ingest.Options
	raw := r.FormValue("options")
	if raw == "" {
		return opts, nil
	}
	err := json.Unmarshal([]byte(raw), &opts)
	return opts, err
}

// handleUpload ingests one file. Parse failures are terminal record
// states, not API errors: the response is 200 with status "failed" so
// the record remains visible in history.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	fileName, data, ok := s.readUploadedFile(w, r)
	if !ok {
		return
	}

	opts, err := parseUploadOptions(r)
	if err != nil {
		badRequest(w, "Upload options are not valid JSON",
			"Check the options payload and try again", "FILE009")
		return
	}

	rec, err := s.service.Ingest(r.Context(), fileName, data, opts)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// handlePreview analyzes a file without persisting anything.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	fileName, data, ok := s.readUploadedFile(w, r)
	if !ok {
		return
	}

	preview, err := s.service.Preview(r.Context(), fileName, data)
	if err != nil {
		// Fatal parse errors are user-fixable input problems.
		writeError(w, http.StatusUnprocessableEntity, core.MapError(err))
		return
	}

	writeJSON(w, http.StatusOK, preview)
}
