package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"certbank-service/internal/app"
	"certbank-service/internal/domain"
	"certbank-service/internal/infra/memory"
	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T, uniqueLinks bool) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	jsonlRepo := memory.NewJsonlRepository(store)
	services := Services{
		Certificacoes: app.NewCertificacaoService(memory.NewCertificacaoRepository(store)),
		Perguntas:     app.NewPerguntaService(memory.NewPerguntaRepository(store)),
		Usuarios:      app.NewUsuarioService(memory.NewUsuarioRepository(store), uniqueLinks),
		Exports:       app.NewExportService(jsonlRepo, memory.NewExportCache(jsonlRepo, time.Minute)),
		Stats:         store,
	}
	return NewRouter(services, nil), store
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestCertificacaoCRUD(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/certificacoes", gin.H{"nome": "AWS SAA", "descricao": "Architect associate"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	created := decode[domain.Certificacao](t, rec)
	if created.ID == 0 || created.Nome != "AWS SAA" {
		t.Fatalf("unexpected created body: %+v", created)
	}
	if created.CreatedAt.After(time.Now()) {
		t.Fatalf("created_at in the future: %v", created.CreatedAt)
	}

	rec = do(t, router, http.MethodGet, "/api/certificacoes/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", rec.Code)
	}
	got := decode[domain.Certificacao](t, rec)
	if got.Nome != created.Nome || got.Descricao == nil || *got.Descricao != "Architect associate" {
		t.Fatalf("get returned %+v", got)
	}

	rec = do(t, router, http.MethodPut, "/api/certificacoes/1", gin.H{"nome": "AWS SAA-C03"})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", rec.Code)
	}
	updated := decode[domain.Certificacao](t, rec)
	if updated.Nome != "AWS SAA-C03" || updated.Descricao != nil {
		t.Fatalf("update returned %+v", updated)
	}

	rec = do(t, router, http.MethodGet, "/api/certificacoes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	if list := decode[[]domain.Certificacao](t, rec); len(list) != 1 {
		t.Fatalf("expected 1 certificacao, got %d", len(list))
	}

	rec = do(t, router, http.MethodDelete, "/api/certificacoes/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	if msg := decode[map[string]string](t, rec); msg["message"] == "" {
		t.Fatalf("expected message body, got %s", rec.Body.String())
	}

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/certificacoes/1"},
		{http.MethodPut, "/api/certificacoes/1"},
		{http.MethodDelete, "/api/certificacoes/1"},
	} {
		var body any
		if tc.method == http.MethodPut {
			body = gin.H{"nome": "x"}
		}
		rec = do(t, router, tc.method, tc.path, body)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, rec.Code)
		}
		if errBody := decode[map[string]string](t, rec); errBody["error"] == "" {
			t.Fatalf("expected error body, got %s", rec.Body.String())
		}
	}
}

func TestPerguntaEndToEndScenario(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/certificacoes", gin.H{"nome": "AWS Cloud Practitioner"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create certificacao: expected 201, got %d", rec.Code)
	}
	cert := decode[domain.Certificacao](t, rec)

	rec = do(t, router, http.MethodPost, "/api/perguntas", gin.H{
		"certificacao_id": cert.ID,
		"enunciado":       "O que significa IaaS?",
		"respostas": []gin.H{
			{"texto": "Infrastructure as a Service", "correta": true},
			{"texto": "Internet as a Service", "correta": false},
			{"texto": "Identity as a Service", "correta": false},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create pergunta: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	pergunta := decode[domain.Pergunta](t, rec)
	if pergunta.ID == 0 {
		t.Fatalf("expected generated pergunta id")
	}

	rec = do(t, router, http.MethodGet, "/api/perguntas/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get pergunta: expected 200, got %d", rec.Code)
	}
	got := decode[domain.Pergunta](t, rec)
	if len(got.Respostas) != 3 {
		t.Fatalf("expected 3 respostas embedded, got %d", len(got.Respostas))
	}
	if got.Certificacao == nil || got.Certificacao.ID != cert.ID {
		t.Fatalf("expected embedded certificacao, got %+v", got.Certificacao)
	}

	rec = do(t, router, http.MethodPut, "/api/perguntas/1", gin.H{
		"certificacao_id": cert.ID,
		"enunciado":       "O que significa IaaS?",
		"respostas": []gin.H{
			{"texto": "Infrastructure as a Service", "correta": true},
			{"texto": "Identity as a Service", "correta": false},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update pergunta: expected 200, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/perguntas/1", nil)
	got = decode[domain.Pergunta](t, rec)
	if len(got.Respostas) != 2 {
		t.Fatalf("expected answer set replaced with 2 respostas, got %d", len(got.Respostas))
	}

	rec = do(t, router, http.MethodDelete, "/api/certificacoes/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete certificacao: expected 200, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/perguntas/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after cascade, got %d", rec.Code)
	}
}

func TestPerguntaListShapes(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/certificacoes", gin.H{"nome": "CKA"})
	cert := decode[domain.Certificacao](t, rec)
	do(t, router, http.MethodPost, "/api/perguntas", gin.H{
		"certificacao_id": cert.ID,
		"enunciado":       "O que é um Pod?",
		"respostas": []gin.H{
			{"texto": "Menor unidade de execução", "correta": true},
			{"texto": "Um nó", "correta": false},
			{"texto": "Um volume", "correta": false},
		},
	})

	rec = do(t, router, http.MethodGet, "/api/perguntas", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	resumos := decode[[]domain.PerguntaResumo](t, rec)
	if len(resumos) != 1 || resumos[0].TotalRespostas != 3 {
		t.Fatalf("unexpected resumo list: %+v", resumos)
	}
	if resumos[0].Certificacao == nil || resumos[0].Certificacao.Nome != "CKA" {
		t.Fatalf("expected certificacao embedded in list, got %+v", resumos[0].Certificacao)
	}

	rec = do(t, router, http.MethodGet, "/api/perguntas/certificacao/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list by certificacao: expected 200, got %d", rec.Code)
	}
	perguntas := decode[[]domain.Pergunta](t, rec)
	if len(perguntas) != 1 || len(perguntas[0].Respostas) != 3 {
		t.Fatalf("expected respostas embedded, got %+v", perguntas)
	}

	rec = do(t, router, http.MethodGet, "/api/perguntas/abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", rec.Code)
	}
}

func TestUsuarioValidationAndLinks(t *testing.T) {
	router, store := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/usuarios", gin.H{
		"nome_completo": "Alice Souza", "email": "alice@example.com", "ddi": "55", "whatsapp": "11999990000",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create usuario: expected 201, got %d", rec.Code)
	}
	usuario := decode[domain.Usuario](t, rec)

	rec = do(t, router, http.MethodPost, "/api/usuarios", gin.H{
		"nome_completo": "Outra Alice", "email": "alice@example.com", "ddi": "55", "whatsapp": "11888880000",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: expected 400, got %d", rec.Code)
	}
	if errBody := decode[map[string]string](t, rec); errBody["error"] != "Já existe um usuário cadastrado com este email" {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/api/certificacoes", gin.H{"nome": "CKAD"})
	cert := decode[domain.Certificacao](t, rec)

	for i := 0; i < 2; i++ {
		rec = do(t, router, http.MethodPost, "/api/usuarios/1/certificacoes", gin.H{"certificacao_id": cert.ID})
		if rec.Code != http.StatusCreated {
			t.Fatalf("attach %d: expected 201, got %d", i, rec.Code)
		}
	}
	if n := store.CountVinculos(usuario.ID, cert.ID); n != 2 {
		t.Fatalf("expected duplicate link rows, got %d", n)
	}

	rec = do(t, router, http.MethodGet, "/api/usuarios/1/certificacoes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list certificacoes: expected 200, got %d", rec.Code)
	}
	certs := decode[[]domain.Certificacao](t, rec)
	if len(certs) != 1 || certs[0].Nome != "CKAD" {
		t.Fatalf("unexpected certificacoes: %+v", certs)
	}

	rec = do(t, router, http.MethodDelete, "/api/usuarios/1/certificacoes/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove link: expected 200, got %d", rec.Code)
	}
	rec = do(t, router, http.MethodDelete, "/api/usuarios/1/certificacoes/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("remove absent link: expected 404, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodDelete, "/api/usuarios/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete usuario: expected 200, got %d", rec.Code)
	}
	rec = do(t, router, http.MethodGet, "/api/usuarios/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestUsuarioUniqueLinksMode(t *testing.T) {
	router, _ := newTestRouter(t, true)

	do(t, router, http.MethodPost, "/api/usuarios", gin.H{
		"nome_completo": "Bruno Lima", "email": "bruno@example.com", "ddi": "55", "whatsapp": "11911110000",
	})
	do(t, router, http.MethodPost, "/api/certificacoes", gin.H{"nome": "Terraform Associate"})

	rec := do(t, router, http.MethodPost, "/api/usuarios/1/certificacoes", gin.H{"certificacao_id": 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first attach: expected 201, got %d", rec.Code)
	}
	rec = do(t, router, http.MethodPost, "/api/usuarios/1/certificacoes", gin.H{"certificacao_id": 1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("second attach: expected 400, got %d", rec.Code)
	}
}

func TestJsonlCreateAndLatest(t *testing.T) {
	router, _ := newTestRouter(t, false)

	rec := do(t, router, http.MethodPost, "/api/certificacoes", gin.H{"nome": "AWS DVA"})
	cert := decode[domain.Certificacao](t, rec)

	rec = do(t, router, http.MethodGet, "/api/jsonl/certificacao/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("latest without exports: expected 200, got %d", rec.Code)
	}
	if body := bytes.TrimSpace(rec.Body.Bytes()); !bytes.Equal(body, []byte("null")) {
		t.Fatalf("expected null body, got %s", body)
	}

	content := `{"id":1,"pergunta":"O que é Lambda?","explicacao":null,"respostas":[]}`
	rec = do(t, router, http.MethodPost, "/api/jsonl", gin.H{
		"certificacao_id": cert.ID,
		"content":         content,
		"filename":        "perguntas.jsonl",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create export: expected 201, got %d", rec.Code)
	}
	created := decode[domain.JsonlFile](t, rec)
	if created.ID == 0 || created.Content != content {
		t.Fatalf("unexpected export row: %+v", created)
	}

	rec = do(t, router, http.MethodGet, "/api/jsonl/certificacao/1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("latest: expected 200, got %d", rec.Code)
	}
	latest := decode[domain.JsonlFile](t, rec)
	if latest.ID != created.ID || latest.Filename != "perguntas.jsonl" {
		t.Fatalf("unexpected latest: %+v", latest)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, false)

	do(t, router, http.MethodPost, "/api/certificacoes", gin.H{"nome": "LPIC-1"})
	do(t, router, http.MethodPost, "/api/usuarios", gin.H{
		"nome_completo": "Carla Dias", "email": "carla@example.com", "ddi": "55", "whatsapp": "11922220000",
	})

	rec := do(t, router, http.MethodGet, "/api/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", rec.Code)
	}
	stats := decode[domain.Stats](t, rec)
	if stats.Certificacoes != 1 || stats.Usuarios != 1 || stats.Perguntas != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, false)
	rec := do(t, router, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthz: got %d %q", rec.Code, rec.Body.String())
	}
}
