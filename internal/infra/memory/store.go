package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"certbank-service/internal/domain"
)

// Store is an in-memory implementation of every repository interface. It backs
// the unit tests and lets the server run without Postgres, mirroring the
// store-level cascades of the real schema.
type Store struct {
	mu    sync.RWMutex
	clock func() time.Time

	usuarios      map[int64]domain.Usuario
	certificacoes map[int64]domain.Certificacao
	perguntas     map[int64]domain.Pergunta
	respostas     map[int64]domain.Resposta
	vinculos      map[int64]domain.UsuarioCertificacao
	jsonlFiles    map[int64]domain.JsonlFile

	nextID map[string]int64
}

func NewStore() *Store {
	return &Store{
		clock:         time.Now,
		usuarios:      make(map[int64]domain.Usuario),
		certificacoes: make(map[int64]domain.Certificacao),
		perguntas:     make(map[int64]domain.Pergunta),
		respostas:     make(map[int64]domain.Resposta),
		vinculos:      make(map[int64]domain.UsuarioCertificacao),
		jsonlFiles:    make(map[int64]domain.JsonlFile),
		nextID:        make(map[string]int64),
	}
}

// NewStoreWithClock is test-only for deterministic timestamps.
func NewStoreWithClock(now func() time.Time) *Store {
	s := NewStore()
	s.clock = now
	return s
}

func (s *Store) nextFor(table string) int64 {
	s.nextID[table]++
	return s.nextID[table]
}

// --- certificacoes ---

func (s *Store) List(ctx context.Context) ([]domain.Certificacao, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Certificacao, 0, len(s.certificacoes))
	for _, c := range s.certificacoes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) Get(ctx context.Context, id int64) (domain.Certificacao, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.certificacoes[id]
	if !ok {
		return domain.Certificacao{}, domain.ErrCertificacaoNotFound
	}
	return c, nil
}

func (s *Store) Create(ctx context.Context, cert *domain.Certificacao) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	cert.ID = s.nextFor("certificacoes")
	cert.CreatedAt = now
	cert.UpdatedAt = now
	s.certificacoes[cert.ID] = *cert
	return nil
}

func (s *Store) Update(ctx context.Context, cert *domain.Certificacao) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.certificacoes[cert.ID]
	if !ok {
		return domain.ErrCertificacaoNotFound
	}
	existing.Nome = cert.Nome
	existing.Descricao = cert.Descricao
	existing.UpdatedAt = s.clock()
	s.certificacoes[cert.ID] = existing
	*cert = existing
	return nil
}

// Delete removes the certification and cascades to its questions, their
// answers, user links and export files.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.certificacoes[id]; !ok {
		return domain.ErrCertificacaoNotFound
	}
	delete(s.certificacoes, id)
	for pid, p := range s.perguntas {
		if p.CertificacaoID != id {
			continue
		}
		delete(s.perguntas, pid)
		for rid, r := range s.respostas {
			if r.PerguntaID == pid {
				delete(s.respostas, rid)
			}
		}
	}
	for vid, v := range s.vinculos {
		if v.CertificacaoID == id {
			delete(s.vinculos, vid)
		}
	}
	for fid, f := range s.jsonlFiles {
		if f.CertificacaoID == id {
			delete(s.jsonlFiles, fid)
		}
	}
	return nil
}

// --- perguntas ---

func (s *Store) respostasDe(perguntaID int64) []domain.Resposta {
	out := make([]domain.Resposta, 0)
	for _, r := range s.respostas {
		if r.PerguntaID == perguntaID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) ListResumo(ctx context.Context) ([]domain.PerguntaResumo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PerguntaResumo, 0, len(s.perguntas))
	for _, p := range s.perguntas {
		resumo := domain.PerguntaResumo{
			ID:             p.ID,
			CertificacaoID: p.CertificacaoID,
			Enunciado:      p.Enunciado,
			CreatedAt:      p.CreatedAt,
			UpdatedAt:      p.UpdatedAt,
			TotalRespostas: len(s.respostasDe(p.ID)),
		}
		if cert, ok := s.certificacoes[p.CertificacaoID]; ok {
			c := cert
			resumo.Certificacao = &c
		}
		out = append(out, resumo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListByCertificacao(ctx context.Context, certificacaoID int64) ([]domain.Pergunta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Pergunta, 0)
	for _, p := range s.perguntas {
		if p.CertificacaoID != certificacaoID {
			continue
		}
		q := p
		q.Respostas = s.respostasDe(p.ID)
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetPergunta(ctx context.Context, id int64) (domain.Pergunta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.perguntas[id]
	if !ok {
		return domain.Pergunta{}, domain.ErrPerguntaNotFound
	}
	p.Respostas = s.respostasDe(id)
	if cert, ok := s.certificacoes[p.CertificacaoID]; ok {
		c := cert
		p.Certificacao = &c
	}
	return p, nil
}

func (s *Store) CreatePergunta(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	pergunta.ID = s.nextFor("perguntas")
	pergunta.CreatedAt = now
	pergunta.UpdatedAt = now
	stored := *pergunta
	stored.Certificacao = nil
	stored.Respostas = nil
	s.perguntas[stored.ID] = stored
	s.insertRespostasLocked(stored.ID, respostas, now)
	return nil
}

func (s *Store) UpdatePergunta(ctx context.Context, pergunta *domain.Pergunta, respostas []domain.Resposta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.perguntas[pergunta.ID]
	if !ok {
		return domain.ErrPerguntaNotFound
	}
	now := s.clock()
	existing.CertificacaoID = pergunta.CertificacaoID
	existing.Enunciado = pergunta.Enunciado
	existing.Explicacao = pergunta.Explicacao
	existing.UpdatedAt = now
	s.perguntas[existing.ID] = existing
	*pergunta = existing

	// Full replace: drop the old set, insert the new one.
	for rid, r := range s.respostas {
		if r.PerguntaID == existing.ID {
			delete(s.respostas, rid)
		}
	}
	s.insertRespostasLocked(existing.ID, respostas, now)
	return nil
}

func (s *Store) insertRespostasLocked(perguntaID int64, respostas []domain.Resposta, now time.Time) {
	for i := range respostas {
		respostas[i].ID = s.nextFor("respostas")
		respostas[i].PerguntaID = perguntaID
		respostas[i].CreatedAt = now
		respostas[i].UpdatedAt = now
		s.respostas[respostas[i].ID] = respostas[i]
	}
}

func (s *Store) DeletePergunta(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.perguntas[id]; !ok {
		return domain.ErrPerguntaNotFound
	}
	delete(s.perguntas, id)
	for rid, r := range s.respostas {
		if r.PerguntaID == id {
			delete(s.respostas, rid)
		}
	}
	return nil
}

// --- usuarios ---

func (s *Store) ListUsuarios(ctx context.Context) ([]domain.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Usuario, 0, len(s.usuarios))
	for _, u := range s.usuarios {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetUsuario(ctx context.Context, id int64) (domain.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.usuarios[id]
	if !ok {
		return domain.Usuario{}, domain.ErrUsuarioNotFound
	}
	return u, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (domain.Usuario, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.usuarios {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.Usuario{}, domain.ErrUsuarioNotFound
}

func (s *Store) CreateUsuario(ctx context.Context, usuario *domain.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()
	usuario.ID = s.nextFor("users")
	usuario.CreatedAt = now
	usuario.UpdatedAt = now
	s.usuarios[usuario.ID] = *usuario
	return nil
}

func (s *Store) UpdateUsuario(ctx context.Context, usuario *domain.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.usuarios[usuario.ID]
	if !ok {
		return domain.ErrUsuarioNotFound
	}
	existing.NomeCompleto = usuario.NomeCompleto
	existing.Email = usuario.Email
	existing.DDI = usuario.DDI
	existing.Whatsapp = usuario.Whatsapp
	existing.UpdatedAt = s.clock()
	s.usuarios[existing.ID] = existing
	*usuario = existing
	return nil
}

// DeleteUsuario removes the user and cascades to its certification links.
func (s *Store) DeleteUsuario(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usuarios[id]; !ok {
		return domain.ErrUsuarioNotFound
	}
	delete(s.usuarios, id)
	for vid, v := range s.vinculos {
		if v.UsuarioID == id {
			delete(s.vinculos, vid)
		}
	}
	return nil
}

func (s *Store) ListCertificacoes(ctx context.Context, usuarioID int64) ([]domain.Certificacao, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Certificacao, 0)
	seen := make(map[int64]bool)
	for _, v := range s.vinculos {
		if v.UsuarioID != usuarioID || seen[v.CertificacaoID] {
			continue
		}
		if cert, ok := s.certificacoes[v.CertificacaoID]; ok {
			seen[v.CertificacaoID] = true
			out = append(out, cert)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) AddCertificacao(ctx context.Context, vinculo *domain.UsuarioCertificacao) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	vinculo.ID = s.nextFor("usuarios_certificacoes")
	s.vinculos[vinculo.ID] = *vinculo
	return nil
}

func (s *Store) HasCertificacao(ctx context.Context, usuarioID, certificacaoID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.vinculos {
		if v.UsuarioID == usuarioID && v.CertificacaoID == certificacaoID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) RemoveCertificacao(ctx context.Context, usuarioID, certificacaoID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := false
	for vid, v := range s.vinculos {
		if v.UsuarioID == usuarioID && v.CertificacaoID == certificacaoID {
			delete(s.vinculos, vid)
			removed = true
		}
	}
	if !removed {
		return domain.ErrVinculoNotFound
	}
	return nil
}

// CountVinculos is test-only: number of link rows for a user/certification pair.
func (s *Store) CountVinculos(usuarioID, certificacaoID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, v := range s.vinculos {
		if v.UsuarioID == usuarioID && v.CertificacaoID == certificacaoID {
			n++
		}
	}
	return n
}

// CountRespostas is test-only: number of answer rows across all questions.
func (s *Store) CountRespostas() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.respostas)
}

// --- jsonl files ---

func (s *Store) CreateJsonl(ctx context.Context, file *domain.JsonlFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	file.ID = s.nextFor("jsonl_files")
	file.CreatedAt = s.clock()
	s.jsonlFiles[file.ID] = *file
	return nil
}

// LatestJsonl returns the most recently created export for the certification,
// or (nil, nil) when none exists. Ties on created_at break on the higher id.
func (s *Store) LatestJsonl(ctx context.Context, certificacaoID int64) (*domain.JsonlFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *domain.JsonlFile
	for _, f := range s.jsonlFiles {
		if f.CertificacaoID != certificacaoID {
			continue
		}
		if latest == nil || f.CreatedAt.After(latest.CreatedAt) ||
			(f.CreatedAt.Equal(latest.CreatedAt) && f.ID > latest.ID) {
			copied := f
			latest = &copied
		}
	}
	return latest, nil
}

// --- stats ---

func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Stats{
		Certificacoes: int64(len(s.certificacoes)),
		Perguntas:     int64(len(s.perguntas)),
		Usuarios:      int64(len(s.usuarios)),
		JsonlFiles:    int64(len(s.jsonlFiles)),
	}, nil
}
