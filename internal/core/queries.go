package core

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/lukewarren/csvault/internal/ingest"
	"github.com/lukewarren/csvault/internal/store"
)

// History returns one page of filtered upload history.
func (s *Service) History(ctx context.Context, f store.UploadFilter, page, limit int) (*store.Page, error) {
	return s.store.ListUploadsFiltered(ctx, f, page, limit)
}

// AllUploads returns the complete status-priority listing.
func (s *Service) AllUploads(ctx context.Context) ([]store.UploadRecord, error) {
	return s.store.ListUploads(ctx)
}

// Upload fetches one record's metadata.
func (s *Service) Upload(ctx context.Context, id uuid.UUID) (*store.UploadRecord, error) {
	rec, err := s.store.GetUpload(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// UploadData fetches the stored rows for a successful upload. Records
// that exist but hold no data (failed or still processing) report
// ErrNotFound, matching what the caller can actually retrieve.
func (s *Service) UploadData(ctx context.Context, id uuid.UUID) (*store.UploadRecord, error) {
	rec, err := s.store.GetUploadData(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if rec.Data == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// OriginalFile returns the raw uploaded bytes and audits the download.
func (s *Service) OriginalFile(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	name, content, err := s.store.GetOriginalFile(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrNotFound
		}
		return "", nil, err
	}

	s.audit(ctx, &store.AuditEntry{
		Action:   store.ActionDownload,
		UploadID: &id,
		FileName: name,
		Status:   store.AuditStatusSuccess,
	})
	return name, content, nil
}

// ExportCSV re-serializes an upload's stored rows as CSV and audits
// the export.
func (s *Service) ExportCSV(ctx context.Context, id uuid.UUID, w io.Writer) (string, error) {
	rec, err := s.UploadData(ctx, id)
	if err != nil {
		return "", err
	}

	if err := ingest.WriteCSV(w, rec.Columns, rec.Data); err != nil {
		return "", fmt.Errorf("export csv: %w", err)
	}

	s.audit(ctx, &store.AuditEntry{
		Action:   store.ActionExport,
		UploadID: &id,
		FileName: rec.FileName,
		Status:   store.AuditStatusSuccess,
		Details:  map[string]any{"rows": len(rec.Data)},
	})
	return rec.FileName, nil
}

// Stats aggregates upload counts and volume for the statistics view.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.UploadStats(ctx)
}

// AuditLog returns matching audit entries plus the total match count
// for pagination.
func (s *Service) AuditLog(ctx context.Context, f store.AuditFilter, limit, offset int) ([]store.AuditEntry, int64, error) {
	entries, err := s.store.ListAuditEntries(ctx, f, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.CountAuditEntries(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
