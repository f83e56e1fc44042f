package app

import (
	"context"
	"errors"

	"certbank-service/internal/domain"
)

// UsuarioRepository abstracts user storage, including the N-N link rows to
// certifications.
type UsuarioRepository interface {
	List(ctx context.Context) ([]domain.Usuario, error)
	Get(ctx context.Context, id int64) (domain.Usuario, error)
	FindByEmail(ctx context.Context, email string) (domain.Usuario, error)
	Create(ctx context.Context, usuario *domain.Usuario) error
	Update(ctx context.Context, usuario *domain.Usuario) error
	Delete(ctx context.Context, id int64) error

	ListCertificacoes(ctx context.Context, usuarioID int64) ([]domain.Certificacao, error)
	AddCertificacao(ctx context.Context, vinculo *domain.UsuarioCertificacao) error
	HasCertificacao(ctx context.Context, usuarioID, certificacaoID int64) (bool, error)
	RemoveCertificacao(ctx context.Context, usuarioID, certificacaoID int64) error
}

// UsuarioService contains the user use cases. uniqueLinks toggles the
// duplicate-link constraint on AddCertificacao; the original system never
// checked, so the default is off.
type UsuarioService struct {
	repo        UsuarioRepository
	uniqueLinks bool
}

func NewUsuarioService(repo UsuarioRepository, uniqueLinks bool) *UsuarioService {
	return &UsuarioService{repo: repo, uniqueLinks: uniqueLinks}
}

func (s *UsuarioService) List(ctx context.Context) ([]domain.Usuario, error) {
	return s.repo.List(ctx)
}

func (s *UsuarioService) Get(ctx context.Context, id int64) (domain.Usuario, error) {
	return s.repo.Get(ctx, id)
}

// Create rejects an already-registered email via a pre-insert lookup, before
// the store's unique constraint would fire.
func (s *UsuarioService) Create(ctx context.Context, usuario *domain.Usuario) error {
	_, err := s.repo.FindByEmail(ctx, usuario.Email)
	if err == nil {
		return domain.ErrEmailEmUso
	}
	if !errors.Is(err, domain.ErrUsuarioNotFound) {
		return err
	}
	return s.repo.Create(ctx, usuario)
}

func (s *UsuarioService) Update(ctx context.Context, usuario *domain.Usuario) error {
	return s.repo.Update(ctx, usuario)
}

func (s *UsuarioService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *UsuarioService) ListCertificacoes(ctx context.Context, usuarioID int64) ([]domain.Certificacao, error) {
	return s.repo.ListCertificacoes(ctx, usuarioID)
}

// AddCertificacao inserts a link row. With uniqueLinks off, repeated calls for
// the same pair create additional rows.
func (s *UsuarioService) AddCertificacao(ctx context.Context, usuarioID, certificacaoID int64) (domain.UsuarioCertificacao, error) {
	if s.uniqueLinks {
		exists, err := s.repo.HasCertificacao(ctx, usuarioID, certificacaoID)
		if err != nil {
			return domain.UsuarioCertificacao{}, err
		}
		if exists {
			return domain.UsuarioCertificacao{}, domain.ErrVinculoDuplicado
		}
	}
	vinculo := domain.UsuarioCertificacao{
		UsuarioID:      usuarioID,
		CertificacaoID: certificacaoID,
	}
	if err := s.repo.AddCertificacao(ctx, &vinculo); err != nil {
		return domain.UsuarioCertificacao{}, err
	}
	return vinculo, nil
}

// RemoveCertificacao deletes every link row matching the pair.
func (s *UsuarioService) RemoveCertificacao(ctx context.Context, usuarioID, certificacaoID int64) error {
	return s.repo.RemoveCertificacao(ctx, usuarioID, certificacaoID)
}
