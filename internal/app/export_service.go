package app

import (
	"context"
	"log"

	"certbank-service/internal/domain"
)

// JsonlRepository persists export artifacts. Latest returns (nil, nil) when
// the certification has no exports.
type JsonlRepository interface {
	Create(ctx context.Context, file *domain.JsonlFile) error
	Latest(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error)
}

// ExportCache serves the latest-export lookup, falling back to the repository
// on miss (Redis or in-memory).
type ExportCache interface {
	Latest(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error)
	Invalidate(ctx context.Context, certificacaoID int64) error
}

// StatsProvider reports aggregate row counts.
type StatsProvider interface {
	Stats(ctx context.Context) (domain.Stats, error)
}

// ExportService stores JSONL artifacts and answers latest-export lookups
// through the cache.
type ExportService struct {
	repo  JsonlRepository
	cache ExportCache
}

func NewExportService(repo JsonlRepository, cache ExportCache) *ExportService {
	return &ExportService{repo: repo, cache: cache}
}

// Create persists the pre-serialized content verbatim. The content's line
// structure is not validated. The cache entry for the certification is
// invalidated so the next lookup sees the new artifact.
func (s *ExportService) Create(ctx context.Context, file *domain.JsonlFile) error {
	if err := s.repo.Create(ctx, file); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, file.CertificacaoID); err != nil {
		log.Printf("invalidate export cache for certificacao %d: %v", file.CertificacaoID, err)
	}
	return nil
}

// Latest returns the most recently created export for the certification, or
// nil when none exists.
func (s *ExportService) Latest(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error) {
	return s.cache.Latest(ctx, certificacaoID)
}
