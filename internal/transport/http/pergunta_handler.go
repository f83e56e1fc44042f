package http

import (
	"errors"
	"net/http"

	"certbank-service/internal/app"
	"certbank-service/internal/domain"
	"github.com/gin-gonic/gin"
)

type PerguntaHandler struct {
	service *app.PerguntaService
}

func NewPerguntaHandler(service *app.PerguntaService) *PerguntaHandler {
	return &PerguntaHandler{service: service}
}

type respostaInput struct {
	Texto   string `json:"texto"`
	Correta bool   `json:"correta"`
}

type perguntaRequest struct {
	CertificacaoID int64           `json:"certificacao_id"`
	Enunciado      string          `json:"enunciado"`
	Explicacao     *string         `json:"explicacao"`
	Respostas      []respostaInput `json:"respostas"`
}

func (r perguntaRequest) respostas() []domain.Resposta {
	out := make([]domain.Resposta, 0, len(r.Respostas))
	for _, in := range r.Respostas {
		out = append(out, domain.Resposta{Texto: in.Texto, Correta: in.Correta})
	}
	return out
}

func (h *PerguntaHandler) List(c *gin.Context) {
	perguntas, err := h.service.ListResumo(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar perguntas"})
		return
	}
	c.JSON(http.StatusOK, perguntas)
}

func (h *PerguntaHandler) ListByCertificacao(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	perguntas, err := h.service.ListByCertificacao(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar perguntas"})
		return
	}
	c.JSON(http.StatusOK, perguntas)
}

func (h *PerguntaHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pergunta, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPerguntaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pergunta não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar pergunta"})
		return
	}
	c.JSON(http.StatusOK, pergunta)
}

func (h *PerguntaHandler) Create(c *gin.Context) {
	var req perguntaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	pergunta := domain.Pergunta{
		CertificacaoID: req.CertificacaoID,
		Enunciado:      req.Enunciado,
		Explicacao:     req.Explicacao,
	}
	if err := h.service.Create(c.Request.Context(), &pergunta, req.respostas()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar pergunta"})
		return
	}
	c.JSON(http.StatusCreated, pergunta)
}

func (h *PerguntaHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req perguntaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	pergunta := domain.Pergunta{
		ID:             id,
		CertificacaoID: req.CertificacaoID,
		Enunciado:      req.Enunciado,
		Explicacao:     req.Explicacao,
	}
	if err := h.service.Update(c.Request.Context(), &pergunta, req.respostas()); err != nil {
		if errors.Is(err, domain.ErrPerguntaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pergunta não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar pergunta"})
		return
	}
	c.JSON(http.StatusOK, pergunta)
}

func (h *PerguntaHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPerguntaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pergunta não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir pergunta"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pergunta excluída com sucesso"})
}
