package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"certbank-service/internal/domain"
	"github.com/uptrace/bun"
)

// JsonlRepository stores export artifacts. Rows are append-only; there is no
// update path.
type JsonlRepository struct {
	db *bun.DB
}

func NewJsonlRepository(db *bun.DB) *JsonlRepository {
	return &JsonlRepository{db: db}
}

func (r *JsonlRepository) Create(ctx context.Context, file *domain.JsonlFile) error {
	file.CreatedAt = time.Now()
	if _, err := r.db.NewInsert().Model(file).Exec(ctx); err != nil {
		return fmt.Errorf("create jsonl file: %w", err)
	}
	return nil
}

// Latest returns the most recently created export for the certification, or
// (nil, nil) when none exists.
func (r *JsonlRepository) Latest(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error) {
	var file domain.JsonlFile
	err := r.db.NewSelect().
		Model(&file).
		Where("jsonl_file.certificacao_id = ?", certificacaoID).
		Order("jsonl_file.created_at DESC").
		Order("jsonl_file.id DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest jsonl file: %w", err)
	}
	return &file, nil
}
