package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lukewarren/csvault/internal/ingest"
)

const uploadColumns = `id, file_name, file_size, status, uploaded_at,
	completed_at, total_rows, errors, COALESCE(message, ''), columns, data`

// CreateUpload inserts a new upload in processing state. The record is
// durable before any parsing starts, so a crash mid-ingest leaves a
// visible processing entry rather than nothing.
func (s *Store) CreateUpload(ctx context.Context, fileName string, fileSize int64) (*UploadRecord, error) {
	rec := &UploadRecord{
		ID:       uuid.New(),
		FileName: fileName,
		FileSize: fileSize,
		Status:   StatusProcessing,
	}

	err := s.pool.QueryRow(ctx,
		`INSERT INTO uploads (id, file_name, file_size, status, uploaded_at)
		 VALUES ($1, $2, $3, $4, now())
		 RETURNING uploaded_at`,
		rec.ID, rec.FileName, rec.FileSize, rec.Status,
	).Scan(&rec.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("create upload: %w", err)
	}

	return rec, nil
}

// CompleteUploadParams carries the terminal outcome of an ingestion.
type CompleteUploadParams struct {
	Status    string
	Message   string
	TotalRows *int
	Errors    []string
	Columns   []string
	Data      []ingest.Row
}

// CompleteUpload moves an upload to a terminal status. Parsed data is
// stored only for successful uploads; failed uploads keep metadata and
// the failure message but no row payload.
func (s *Store) CompleteUpload(ctx context.Context, id uuid.UUID, p CompleteUploadParams) error {
	if p.Status != StatusSuccess {
		p.TotalRows = nil
		p.Columns = nil
		p.Data = nil
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE uploads
		 SET status = $2, completed_at = now(), total_rows = $3,
		     errors = $4, message = $5, columns = $6, data = $7
		 WHERE id = $1`,
		id, p.Status, p.TotalRows, p.Errors, p.Message, p.Columns, p.Data,
	)
	if err != nil {
		return fmt.Errorf("complete upload: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUpload fetches one upload record by id.
func (s *Store) GetUpload(ctx context.Context, id uuid.UUID) (*UploadRecord, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM uploads WHERE id = $1", uploadColumns), id)

	rec, err := scanUpload(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get upload: %w", err)
	}
	return rec, nil
}

// GetUploadData fetches only the stored columns and row payload.
// Returns ErrNotFound when the record does not exist.
func (s *Store) GetUploadData(ctx context.Context, id uuid.UUID) (*UploadRecord, error) {
	rec := &UploadRecord{ID: id}
	err := s.pool.QueryRow(ctx,
		`SELECT file_name, total_rows, columns, data FROM uploads WHERE id = $1`, id,
	).Scan(&rec.FileName, &rec.TotalRows, &rec.Columns, &rec.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get upload data: %w", err)
	}
	return rec, nil
}

// ListUploads returns every upload ordered by status priority, then
// most recent first.
func (s *Store) ListUploads(ctx context.Context) ([]UploadRecord, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM uploads ORDER BY %s, uploaded_at DESC",
		uploadColumns, statusOrderClause(),
	)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	return collectUploads(rows)
}

// ListUploadsFiltered returns one page of upload history matching the
// filter, ordered by status priority then uploaded_at DESC. An empty
// result has Total 0 and TotalPages 0.
func (s *Store) ListUploadsFiltered(ctx context.Context, f UploadFilter, page, limit int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	wb := buildUploadFilter(f)
	where := wb.clause()

	var total int64
	countQuery := "SELECT COUNT(*) FROM uploads" + where
	if err := s.pool.QueryRow(ctx, countQuery, wb.args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count uploads: %w", err)
	}

	result := &Page{
		Records:    []UploadRecord{},
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}
	if total == 0 {
		return result, nil
	}

	argIdx := wb.nextArgIndex()
	query := fmt.Sprintf(
		"SELECT %s FROM uploads%s ORDER BY %s, uploaded_at DESC LIMIT $%d OFFSET $%d",
		uploadColumns, where, statusOrderClause(), argIdx, argIdx+1,
	)
	args := append(wb.args, limit, (page-1)*limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	records, err := collectUploads(rows)
	if err != nil {
		return nil, err
	}
	result.Records = records
	return result, nil
}

// DeleteUploads removes the given uploads and returns how many rows
// were actually deleted. Stored file blobs cascade.
func (s *Store) DeleteUploads(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := s.pool.Exec(ctx, "DELETE FROM uploads WHERE id = ANY($1)", ids)
	if err != nil {
		return 0, fmt.Errorf("delete uploads: %w", err)
	}
	return tag.RowsAffected(), nil
}

// StoreOriginalFile saves the raw uploaded bytes alongside the record.
func (s *Store) StoreOriginalFile(ctx context.Context, uploadID uuid.UUID, content []byte) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO upload_files (upload_id, content) VALUES ($1, $2)
		 ON CONFLICT (upload_id) DO UPDATE SET content = EXCLUDED.content`,
		uploadID, content,
	)
	if err != nil {
		return fmt.Errorf("store original file: %w", err)
	}
	return nil
}

// GetOriginalFile returns the raw bytes as uploaded, plus the file name
// for the download response.
func (s *Store) GetOriginalFile(ctx context.Context, uploadID uuid.UUID) (string, []byte, error) {
	var name string
	var content []byte
	err := s.pool.QueryRow(ctx,
		`SELECT u.file_name, f.content
		 FROM upload_files f JOIN uploads u ON u.id = f.upload_id
		 WHERE f.upload_id = $1`,
		uploadID,
	).Scan(&name, &content)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrNotFound
		}
		return "", nil, fmt.Errorf("get original file: %w", err)
	}
	return name, content, nil
}

// UploadStats aggregates counts per status plus total rows and bytes.
func (s *Store) UploadStats(ctx context.Context) (*Stats, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(total_rows), 0), COALESCE(SUM(file_size), 0)
		 FROM uploads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("upload stats: %w", err)
	}
	defer rows.Close()

	stats := &Stats{ByStatus: make(map[string]int64)}
	for rows.Next() {
		var status string
		var count, totalRows, totalBytes int64
		if err := rows.Scan(&status, &count, &totalRows, &totalBytes); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats.ByStatus[status] = count
		stats.TotalUploads += count
		stats.TotalRows += totalRows
		stats.TotalBytes += totalBytes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}
	return stats, nil
}

// totalPages computes the page count; an empty result set has zero
// pages, not one.
func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// scanUpload reads one record from a row in uploadColumns order.
func scanUpload(row pgx.Row) (*UploadRecord, error) {
	rec := &UploadRecord{}
	var completedAt *time.Time
	err := row.Scan(
		&rec.ID, &rec.FileName, &rec.FileSize, &rec.Status, &rec.UploadedAt,
		&completedAt, &rec.TotalRows, &rec.Errors, &rec.Message,
		&rec.Columns, &rec.Data,
	)
	if err != nil {
		return nil, err
	}
	rec.CompletedAt = completedAt
	return rec, nil
}

func collectUploads(rows pgx.Rows) ([]UploadRecord, error) {
	var records []UploadRecord
	for rows.Next() {
		rec, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read uploads: %w", err)
	}
	return records, nil
}
