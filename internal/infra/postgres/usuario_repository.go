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

// UsuarioRepository stores users and their certification links in Postgres.
type UsuarioRepository struct {
	db *bun.DB
}

func NewUsuarioRepository(db *bun.DB) *UsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) List(ctx context.Context) ([]domain.Usuario, error) {
	usuarios := make([]domain.Usuario, 0)
	if err := r.db.NewSelect().Model(&usuarios).Order("usuario.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	return usuarios, nil
}

func (r *UsuarioRepository) Get(ctx context.Context, id int64) (domain.Usuario, error) {
	var usuario domain.Usuario
	err := r.db.NewSelect().Model(&usuario).Where("usuario.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Usuario{}, domain.ErrUsuarioNotFound
	}
	if err != nil {
		return domain.Usuario{}, fmt.Errorf("get usuario: %w", err)
	}
	return usuario, nil
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (domain.Usuario, error) {
	var usuario domain.Usuario
	err := r.db.NewSelect().Model(&usuario).Where("usuario.email = ?", email).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Usuario{}, domain.ErrUsuarioNotFound
	}
	if err != nil {
		return domain.Usuario{}, fmt.Errorf("find usuario by email: %w", err)
	}
	return usuario, nil
}

func (r *UsuarioRepository) Create(ctx context.Context, usuario *domain.Usuario) error {
	now := time.Now()
	usuario.CreatedAt = now
	usuario.UpdatedAt = now
	if _, err := r.db.NewInsert().Model(usuario).Exec(ctx); err != nil {
		return fmt.Errorf("create usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepository) Update(ctx context.Context, usuario *domain.Usuario) error {
	usuario.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(usuario).
		Column("nome_completo", "email", "ddi", "whatsapp", "updated_at").
		WherePK().
		Returning("*").
		Exec(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUsuarioNotFound
	}
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrUsuarioNotFound
	}
	return nil
}

// Delete removes the user; its link rows follow via ON DELETE CASCADE.
func (r *UsuarioRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*domain.Usuario)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrUsuarioNotFound
	}
	return nil
}

func (r *UsuarioRepository) ListCertificacoes(ctx context.Context, usuarioID int64) ([]domain.Certificacao, error) {
	certs := make([]domain.Certificacao, 0)
	err := r.db.NewSelect().
		Model(&certs).
		Distinct().
		Join("INNER JOIN usuarios_certificacoes AS uc ON uc.certificacao_id = certificacao.id").
		Where("uc.usuario_id = ?", usuarioID).
		Order("certificacao.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list certificacoes do usuario: %w", err)
	}
	return certs, nil
}

func (r *UsuarioRepository) AddCertificacao(ctx context.Context, vinculo *domain.UsuarioCertificacao) error {
	if _, err := r.db.NewInsert().Model(vinculo).Exec(ctx); err != nil {
		return fmt.Errorf("add certificacao ao usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepository) HasCertificacao(ctx context.Context, usuarioID, certificacaoID int64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*domain.UsuarioCertificacao)(nil)).
		Where("usuario_id = ?", usuarioID).
		Where("certificacao_id = ?", certificacaoID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check vinculo: %w", err)
	}
	return exists, nil
}

// RemoveCertificacao deletes every link row for the pair; the original system
// could hold duplicates and removed them all in one call.
func (r *UsuarioRepository) RemoveCertificacao(ctx context.Context, usuarioID, certificacaoID int64) error {
	res, err := r.db.NewDelete().
		Model((*domain.UsuarioCertificacao)(nil)).
		Where("usuario_id = ?", usuarioID).
		Where("certificacao_id = ?", certificacaoID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("remove certificacao do usuario: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return domain.ErrVinculoNotFound
	}
	return nil
}
