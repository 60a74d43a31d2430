package core

import (
	"context"
	"time"

	"github.com/lukewarren/csvault/internal/ingest"
)

// PreviewResponse summarizes a file without persisting anything:
// detected columns and types plus a bounded sample of rows.
type PreviewResponse struct {
	Columns          []string                     `json:"columns"`
	Types            map[string]ingest.ColumnType `json:"types"`
	SampleRows       []ingest.Row                 `json:"sampleRows"`
	TotalRows        int                          `json:"totalRows"`
	ErrorCount       int                          `json:"errorCount"`
	ProcessingTimeMs int64                        `json:"processingTimeMs"`
}

// Preview parses a file and sniffs column types over a configured
// sample. Fatal parse errors surface unchanged so the caller can map
// them for the user.
func (s *Service) Preview(ctx context.Context, fileName string, data []byte) (*PreviewResponse, error) {
	start := time.Now()

	result, err := runPipeline(fileName, data, ingest.Options{})
	if err != nil {
		return nil, err
	}

	sampleSize := s.cfg.Upload.PreviewSampleRows
	records := make([]ingest.Record, len(result.Rows))
	for i, row := range result.Rows {
		records[i] = ingest.Record{Row: row}
	}

	sample := result.Rows
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	return &PreviewResponse{
		Columns:          result.Columns,
		Types:            ingest.InferColumnTypes(result.Columns, records, sampleSize),
		SampleRows:       sample,
		TotalRows:        len(result.Rows),
		ErrorCount:       len(result.Errors),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}, nil
}
