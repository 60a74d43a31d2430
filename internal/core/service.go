package core

import (
	"github.com/lukewarren/csvault/internal/config"
	"github.com/lukewarren/csvault/internal/store"
)

// Service implements the application's operations on top of the
// ingestion pipeline and the store.
type Service struct {
	store   *store.Store
	limiter *IngestLimiter
	cfg     *config.Config
}

// NewService wires a Service with an ingestion limiter sized from
// configuration.
func NewService(st *store.Store, cfg *config.Config) *Service {
	return &Service{
		store:   st,
		limiter: NewIngestLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		cfg:     cfg,
	}
}

// Limiter exposes the ingestion limiter for shutdown draining.
func (s *Service) Limiter() *IngestLimiter {
	return s.limiter
}
