package app

import (
	"context"

	"certbank-service/internal/domain"
)

// CertificacaoRepository abstracts how certifications are stored.
type CertificacaoRepository interface {
	List(ctx context.Context) ([]domain.Certificacao, error)
	Get(ctx context.Context, id int64) (domain.Certificacao, error)
	Create(ctx context.Context, cert *domain.Certificacao) error
	Update(ctx context.Context, cert *domain.Certificacao) error
	Delete(ctx context.Context, id int64) error
}

// CertificacaoService contains the certification use cases.
type CertificacaoService struct {
	repo CertificacaoRepository
}

func NewCertificacaoService(repo CertificacaoRepository) *CertificacaoService {
	return &CertificacaoService{repo: repo}
}

func (s *CertificacaoService) List(ctx context.Context) ([]domain.Certificacao, error) {
	return s.repo.List(ctx)
}

func (s *CertificacaoService) Get(ctx context.Context, id int64) (domain.Certificacao, error) {
	return s.repo.Get(ctx, id)
}

func (s *CertificacaoService) Create(ctx context.Context, cert *domain.Certificacao) error {
	return s.repo.Create(ctx, cert)
}

// Update replaces nome/descricao and refreshes updated_at.
func (s *CertificacaoService) Update(ctx context.Context, cert *domain.Certificacao) error {
	return s.repo.Update(ctx, cert)
}

// Delete removes the certification; dependent questions, answers, links and
// exports go with it (store-level cascade).
func (s *CertificacaoService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
