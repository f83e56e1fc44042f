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

// CertificacaoRepository stores certifications in Postgres via bun.
type CertificacaoRepository struct {
	db *bun.DB
}

func NewCertificacaoRepository(db *bun.DB) *CertificacaoRepository {
	return &CertificacaoRepository{db: db}
}

func (r *CertificacaoRepository) List(ctx context.Context) ([]domain.Certificacao, error) {
	certs := make([]domain.Certificacao, 0)
	if err := r.db.NewSelect().Model(&certs).Order("certificacao.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list certificacoes: %w", err)
	}
	return certs, nil
}

func (r *CertificacaoRepository) Get(ctx context.Context, id int64) (domain.Certificacao, error) {
	var cert domain.Certificacao
	err := r.db.NewSelect().Model(&cert).Where("certificacao.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Certificacao{}, domain.ErrCertificacaoNotFound
	}
	if err != nil {
		return domain.Certificacao{}, fmt.Errorf("get certificacao: %w", err)
	}
	return cert, nil
}

func (r *CertificacaoRepository) Create(ctx context.Context, cert *domain.Certificacao) error {
	now := time.Now()
	cert.CreatedAt = now
	cert.UpdatedAt = now
	if _, err := r.db.NewInsert().Model(cert).Exec(ctx); err != nil {
		return fmt.Errorf("create certificacao: %w", err)
	}
	return nil
}

func (r *CertificacaoRepository) Update(ctx context.Context, cert *domain.Certificacao) error {
	cert.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(cert).
		Column("nome", "descricao", "updated_at").
		WherePK().
		Returning("*").
		Exec(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrCertificacaoNotFound
	}
	if err != nil {
		return fmt.Errorf("update certificacao: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrCertificacaoNotFound
	}
	return nil
}

// Delete removes the row; questions, answers, links and export files follow
// via ON DELETE CASCADE.
func (r *CertificacaoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*domain.Certificacao)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete certificacao: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrCertificacaoNotFound
	}
	return nil
}
