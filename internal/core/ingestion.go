package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/lukewarren/csvault/internal/ingest"
	"github.com/lukewarren/csvault/internal/logging"
	"github.com/lukewarren/csvault/internal/store"
)

// Ingest runs the full upload flow for one file: create a durable
// processing record, store the original bytes, run the pipeline, and
// complete the record as success or failed.
//
// A parse failure is a terminal outcome, not an API error: the failed
// record is returned with a nil error so it stays visible in history.
// A non-nil error means the upload could not be recorded at all.
func (s *Service) Ingest(ctx context.Context, fileName string, data []byte, opts ingest.Options) (*store.UploadRecord, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	logger := logging.WithFields(ctx, "file_name", fileName, "file_size", len(data))

	rec, err := s.store.CreateUpload(ctx, fileName, int64(len(data)))
	if err != nil {
		return nil, err
	}
	logger = logger.With("upload_id", rec.ID)
	logger.Info("ingestion started")

	if err := s.store.StoreOriginalFile(ctx, rec.ID, data); err != nil {
		logger.Warn("failed to store original file", "error", err)
	}

	result, err := runPipeline(fileName, data, opts)
	if err != nil {
		logger.Info("ingestion failed", "error", err)
		return s.completeFailed(ctx, rec, err)
	}

	return s.completeSuccess(ctx, rec, result, logger)
}

// runPipeline dispatches on file extension; .xlsx files are decoded
// into the shared tabular shape first.
func runPipeline(fileName string, data []byte, opts ingest.Options) (*ingest.Result, error) {
	if strings.EqualFold(filepath.Ext(fileName), ".xlsx") {
		parsed, err := ingest.ParseXLSX(data)
		if err != nil {
			return nil, err
		}
		return ingest.Process(parsed, opts), nil
	}
	return ingest.Run(data, opts)
}

func (s *Service) completeSuccess(ctx context.Context, rec *store.UploadRecord, result *ingest.Result, logger *slog.Logger) (*store.UploadRecord, error) {
	totalRows := len(result.Rows)
	message := fmt.Sprintf("Imported %d rows", totalRows)
	if n := len(result.Errors); n > 0 {
		message = fmt.Sprintf("Imported %d rows with %d problem rows", totalRows, n)
	}

	params := store.CompleteUploadParams{
		Status:    store.StatusSuccess,
		Message:   message,
		TotalRows: &totalRows,
		Errors:    formatErrors(result.Errors),
		Columns:   result.Columns,
		Data:      result.Rows,
	}
	if err := s.store.CompleteUpload(ctx, rec.ID, params); err != nil {
		return nil, err
	}

	s.audit(ctx, &store.AuditEntry{
		Action:   store.ActionUpload,
		UploadID: &rec.ID,
		FileName: rec.FileName,
		Status:   store.AuditStatusSuccess,
		Details: map[string]any{
			"totalRows":  totalRows,
			"errorCount": len(result.Errors),
			"duplicates": len(result.Duplicates),
		},
	})

	logger.Info("ingestion completed",
		"rows", totalRows,
		"errors", len(result.Errors),
		"duplicates", len(result.Duplicates),
	)
	return s.store.GetUpload(ctx, rec.ID)
}

func (s *Service) completeFailed(ctx context.Context, rec *store.UploadRecord, cause error) (*store.UploadRecord, error) {
	params := store.CompleteUploadParams{
		Status:  store.StatusFailed,
		Message: cause.Error(),
	}
	if err := s.store.CompleteUpload(ctx, rec.ID, params); err != nil {
		return nil, err
	}

	s.audit(ctx, &store.AuditEntry{
		Action:       store.ActionUpload,
		UploadID:     &rec.ID,
		FileName:     rec.FileName,
		Status:       store.AuditStatusFailure,
		ErrorMessage: cause.Error(),
	})

	return s.store.GetUpload(ctx, rec.ID)
}

// audit writes an audit entry, filling IP and User-Agent from the
// context. Audit failures are logged, never propagated.
func (s *Service) audit(ctx context.Context, e *store.AuditEntry) {
	e.IPAddress = IPAddressFromContext(ctx)
	e.UserAgent = UserAgentFromContext(ctx)

	if err := s.store.InsertAuditEntry(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("audit write failed",
			"action", e.Action, "error", err)
	}
}

// formatErrors renders per-row errors in the stored "Row N: message"
// form shown in the history detail view.
func formatErrors(errs []ingest.ParseError) []string {
	if len(errs) == 0 {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = fmt.Sprintf("Row %d: %s", e.Row, e.Message)
	}
	return out
}

// Delete removes the given uploads and audits the outcome.
func (s *Service) Delete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	count, err := s.store.DeleteUploads(ctx, ids)
	if err != nil {
		s.audit(ctx, &store.AuditEntry{
			Action:       store.ActionDelete,
			Status:       store.AuditStatusFailure,
			ErrorMessage: err.Error(),
		})
		return 0, err
	}

	s.audit(ctx, &store.AuditEntry{
		Action: store.ActionDelete,
		Status: store.AuditStatusSuccess,
		Details: map[string]any{
			"requested": len(ids),
			"deleted":   count,
		},
	})
	return count, nil
}
