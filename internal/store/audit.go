package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Audit actions.
const (
	ActionUpload   = "upload"
	ActionDelete   = "delete"
	ActionExport   = "export"
	ActionDownload = "download"
)

// Audit entry statuses.
const (
	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

// DefaultAuditLimit bounds audit listings when the caller does not
// specify a page size.
const DefaultAuditLimit = 50

// AuditEntry is one append-only audit log row.
type AuditEntry struct {
	ID           uuid.UUID      `json:"id"`
	Action       string         `json:"action"`
	UploadID     *uuid.UUID     `json:"uploadId,omitempty"`
	UserID       string         `json:"userId,omitempty"`
	FileName     string         `json:"fileName,omitempty"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// AuditFilter narrows audit log listings. Zero values are ignored.
type AuditFilter struct {
	Action    string
	UploadID  *uuid.UUID
	Status    string
	StartDate time.Time
	EndDate   time.Time
}

// InsertAuditEntry appends one entry. Entries are never updated or
// deleted through this API.
func (s *Store) InsertAuditEntry(ctx context.Context, e *AuditEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO audit_log
		   (id, action, upload_id, user_id, file_name, ip_address,
		    user_agent, details, status, error_message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		 RETURNING created_at`,
		e.ID, e.Action, e.UploadID, e.UserID, e.FileName, e.IPAddress,
		e.UserAgent, e.Details, e.Status, e.ErrorMessage,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// buildAuditFilter translates an AuditFilter into WHERE conditions.
func buildAuditFilter(f AuditFilter) *whereBuilder {
	wb := &whereBuilder{}

	if f.Action != "" {
		wb.add("action = $%d", f.Action)
	}
	if f.UploadID != nil {
		wb.add("upload_id = $%d", *f.UploadID)
	}
	if f.Status != "" {
		wb.add("status = $%d", f.Status)
	}
	if !f.StartDate.IsZero() {
		wb.add("created_at >= $%d", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		wb.add("created_at <= $%d", f.EndDate)
	}

	return wb
}

// ListAuditEntries returns matching entries newest first.
func (s *Store) ListAuditEntries(ctx context.Context, f AuditFilter, limit, offset int) ([]AuditEntry, error) {
	if limit < 1 {
		limit = DefaultAuditLimit
	}
	if offset < 0 {
		offset = 0
	}

	wb := buildAuditFilter(f)
	argIdx := wb.nextArgIndex()
	query := fmt.Sprintf(
		`SELECT id, action, upload_id, COALESCE(user_id, ''), COALESCE(file_name, ''),
		        COALESCE(ip_address, ''), COALESCE(user_agent, ''), details,
		        status, COALESCE(error_message, ''), created_at
		 FROM audit_log%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		wb.clause(), argIdx, argIdx+1,
	)
	args := append(wb.args, limit, offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		err := rows.Scan(
			&e.ID, &e.Action, &e.UploadID, &e.UserID, &e.FileName,
			&e.IPAddress, &e.UserAgent, &e.Details, &e.Status,
			&e.ErrorMessage, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read audit entries: %w", err)
	}
	return entries, nil
}

// CountAuditEntries returns how many entries match the filter.
func (s *Store) CountAuditEntries(ctx context.Context, f AuditFilter) (int64, error) {
	wb := buildAuditFilter(f)

	var count int64
	query := "SELECT COUNT(*) FROM audit_log" + wb.clause()
	if err := s.pool.QueryRow(ctx, query, wb.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count audit entries: %w", err)
	}
	return count, nil
}
