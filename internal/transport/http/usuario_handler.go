package http

import (
	"errors"
	"net/http"

	"certbank-service/internal/app"
	"certbank-service/internal/domain"
	"github.com/gin-gonic/gin"
)

type UsuarioHandler struct {
	service *app.UsuarioService
}

func NewUsuarioHandler(service *app.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{service: service}
}

type usuarioRequest struct {
	NomeCompleto string `json:"nome_completo"`
	Email        string `json:"email"`
	DDI          string `json:"ddi"`
	Whatsapp     string `json:"whatsapp"`
}

type vinculoRequest struct {
	CertificacaoID int64 `json:"certificacao_id"`
}

func (h *UsuarioHandler) List(c *gin.Context) {
	usuarios, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar usuários"})
		return
	}
	c.JSON(http.StatusOK, usuarios)
}

func (h *UsuarioHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	usuario, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar usuário"})
		return
	}
	c.JSON(http.StatusOK, usuario)
}

func (h *UsuarioHandler) Create(c *gin.Context) {
	var req usuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	usuario := domain.Usuario{
		NomeCompleto: req.NomeCompleto,
		Email:        req.Email,
		DDI:          req.DDI,
		Whatsapp:     req.Whatsapp,
	}
	if err := h.service.Create(c.Request.Context(), &usuario); err != nil {
		if errors.Is(err, domain.ErrEmailEmUso) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Já existe um usuário cadastrado com este email"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar usuário"})
		return
	}
	c.JSON(http.StatusCreated, usuario)
}

func (h *UsuarioHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req usuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	usuario := domain.Usuario{
		ID:           id,
		NomeCompleto: req.NomeCompleto,
		Email:        req.Email,
		DDI:          req.DDI,
		Whatsapp:     req.Whatsapp,
	}
	if err := h.service.Update(c.Request.Context(), &usuario); err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar usuário"})
		return
	}
	c.JSON(http.StatusOK, usuario)
}

func (h *UsuarioHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrUsuarioNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuário não encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir usuário"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuário excluído com sucesso"})
}

func (h *UsuarioHandler) ListCertificacoes(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	certs, err := h.service.ListCertificacoes(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao listar certificações do usuário"})
		return
	}
	c.JSON(http.StatusOK, certs)
}

func (h *UsuarioHandler) AddCertificacao(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req vinculoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	vinculo, err := h.service.AddCertificacao(c.Request.Context(), id, req.CertificacaoID)
	if err != nil {
		if errors.Is(err, domain.ErrVinculoDuplicado) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Usuário já possui esta certificação"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao adicionar certificação ao usuário"})
		return
	}
	c.JSON(http.StatusCreated, vinculo)
}

func (h *UsuarioHandler) RemoveCertificacao(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	certID, ok := paramID(c, "certId")
	if !ok {
		return
	}
	if err := h.service.RemoveCertificacao(c.Request.Context(), id, certID); err != nil {
		if errors.Is(err, domain.ErrVinculoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Relação não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover certificação do usuário"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Certificação removida do usuário com sucesso"})
}
