package memory

import (
	"context"

	"certbank-service/internal/domain"
)

// Per-resource views over a shared Store, so cascades cross repository
// boundaries the way foreign keys do in Postgres.

type CertificacaoRepository struct{ store *Store }

func NewCertificacaoRepository(store *Store) *CertificacaoRepository {
	return &CertificacaoRepository{store: store}
}

func (r *CertificacaoRepository) List(ctx context.Context) ([]domain.Certificacao, error) {
	return r.store.List(ctx)
}

func (r *CertificacaoRepository) Get(ctx context.Context, id int64) (domain.Certificacao, error) {
	return r.store.Get(ctx, id)
}

func (r *CertificacaoRepository) Create(ctx context.Context, cert *domain.Certificacao) error {
	return r.store.Create(ctx, cert)
}

func (r *CertificacaoRepository) Update(ctx context.Context, cert *domain.Certificacao) error {
	return r.store.Update(ctx, cert)
}

func (r *CertificacaoRepository) Delete(ctx context.Context, id int64) error {
	return r.store.Delete(ctx, id)
}

type PerguntaRepository struct{ store *Store }

func NewPerguntaRepository(store *Store) *PerguntaRepository {
	return &PerguntaRepository{store: store}
}

func (r *PerguntaRepository) ListResumo(ctx context.Context) ([]domain.PerguntaResumo, error) {
	return r.store.ListResumo(ctx)
}

func (r *PerguntaRepository) ListByCertificacao(ctx context.Context, certificacaoID int64) ([]domain.Pergunta, error) {
	return r.store.ListByCertificacao(ctx, certificacaoID)
}

func (r *PerguntaRepository) Get(ctx context.Context, id int64) (domain.Pergunta, error) {
	return r.store.GetPergunta(ctx, id)
}

func (r *PerguntaRepository) Create(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error {
	return r.store.CreatePergunta(ctx, pergunta, respostas)
}

func (r *PerguntaRepository) Update(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error {
	return r.store.UpdatePergunta(ctx, pergunta, respostas)
}

func (r *PerguntaRepository) Delete(ctx context.Context, id int64) error {
	return r.store.DeletePergunta(ctx, id)
}

type UsuarioRepository struct{ store *Store }

func NewUsuarioRepository(store *Store) *UsuarioRepository {
	return &UsuarioRepository{store: store}
}

func (r *UsuarioRepository) List(ctx context.Context) ([]domain.Usuario, error) {
	return r.store.ListUsuarios(ctx)
}

func (r *UsuarioRepository) Get(ctx context.Context, id int64) (domain.Usuario, error) {
	return r.store.GetUsuario(ctx, id)
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (domain.Usuario, error) {
	return r.store.FindByEmail(ctx, email)
}

func (r *UsuarioRepository) Create(ctx context.Context, usuario *domain.Usuario) error {
	return r.store.CreateUsuario(ctx, usuario)
}

func (r *UsuarioRepository) Update(ctx context.Context, usuario *domain.Usuario) error {
	return r.store.UpdateUsuario(ctx, usuario)
}

func (r *UsuarioRepository) Delete(ctx context.Context, id int64) error {
	return r.store.DeleteUsuario(ctx, id)
}

func (r *UsuarioRepository) ListCertificacoes(ctx context.Context, usuarioID int64) ([]domain.Certificacao, error) {
	return r.store.ListCertificacoes(ctx, usuarioID)
}

func (r *UsuarioRepository) AddCertificacao(ctx context.Context, vinculo *domain.UsuarioCertificacao) error {
	return r.store.AddCertificacao(ctx, vinculo)
}

func (r *UsuarioRepository) HasCertificacao(ctx context.Context, usuarioID, certificacaoID int64) (bool, error) {
	return r.store.HasCertificacao(ctx, usuarioID, certificacaoID)
}

func (r *UsuarioRepository) RemoveCertificacao(ctx context.Context, usuarioID, certificacaoID int64) error {
	return r.store.RemoveCertificacao(ctx, usuarioID, certificacaoID)
}

type JsonlRepository struct{ store *Store }

func NewJsonlRepository(store *Store) *JsonlRepository {
	return &JsonlRepository{store: store}
}

func (r *JsonlRepository) Create(ctx context.Context, file *domain.JsonlFile) error {
	return r.store.CreateJsonl(ctx, file)
}

func (r *JsonlRepository) Latest(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error) {
	return r.store.LatestJsonl(ctx, certificacaoID)
}
