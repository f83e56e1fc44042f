package app

import (
	"context"

	"certbank-service/internal/domain"
)

// PerguntaRepository abstracts question storage. Create and Update take the
// full answer set and must apply it atomically with the question row.
type PerguntaRepository interface {
	ListResumo(ctx context.Context) ([]domain.PerguntaResumo, error)
	ListByCertificacao(ctx context.Context, certificacaoID int64) ([]domain.Pergunta, error)
	Get(ctx context.Context, id int64) (domain.Pergunta, error)
	Create(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error
	Update(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error
	Delete(ctx context.Context, id int64) error
}

// PerguntaService contains the question use cases.
type PerguntaService struct {
	repo PerguntaRepository
}

func NewPerguntaService(repo PerguntaRepository) *PerguntaService {
	return &PerguntaService{repo: repo}
}

// ListResumo returns all questions with their certification and answer count.
func (s *PerguntaService) ListResumo(ctx context.Context) ([]domain.PerguntaResumo, error) {
	return s.repo.ListResumo(ctx)
}

// ListByCertificacao returns a certification's questions with their answers.
func (s *PerguntaService) ListByCertificacao(ctx context.Context, certificacaoID int64) ([]domain.Pergunta, error) {
	return s.repo.ListByCertificacao(ctx, certificacaoID)
}

func (s *PerguntaService) Get(ctx context.Context, id int64) (domain.Pergunta, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts the question and its answers in one transaction.
func (s *PerguntaService) Create(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error {
	return s.repo.Create(ctx, pergunta, respostas)
}

// Update replaces the question fields and the whole answer set. The old
// answers are deleted and the new ones inserted; answer row ids are not
// preserved across edits. Downstream consumers rely on this churn, so this
// must stay a delete-then-reinsert, never a diff/merge.
func (s *PerguntaService) Update(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error {
	return s.repo.Update(ctx, pergunta, respostas)
}

func (s *PerguntaService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
