package http

import (
	"errors"
	"net/http"

	"certbank-service/internal/app"
	"certbank-service/internal/domain"
	"github.com/gin-gonic/gin"
)

type CertificacaoHandler struct {
	service *app.CertificacaoService
}

func NewCertificacaoHandler(service *app.CertificacaoService) *CertificacaoHandler {
	return &CertificacaoHandler{service: service}
}

type certificacaoRequest struct {
	Nome      string  `json:"nome"`
	Descricao *string `json:"descricao"`
}

func (h *CertificacaoHandler) List(c *gin.Context) {
	certs, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar certificações"})
		return
	}
	c.JSON(http.StatusOK, certs)
}

func (h *CertificacaoHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cert, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrCertificacaoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificação não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar certificação"})
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *CertificacaoHandler) Create(c *gin.Context) {
	var req certificacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	cert := domain.Certificacao{Nome: req.Nome, Descricao: req.Descricao}
	if err := h.service.Create(c.Request.Context(), &cert); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao criar certificação"})
		return
	}
	c.JSON(http.StatusCreated, cert)
}

func (h *CertificacaoHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req certificacaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	cert := domain.Certificacao{ID: id, Nome: req.Nome, Descricao: req.Descricao}
	if err := h.service.Update(c.Request.Context(), &cert); err != nil {
		if errors.Is(err, domain.ErrCertificacaoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificação não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar certificação"})
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *CertificacaoHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrCertificacaoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Certificação não encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao excluir certificação"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Certificação excluída com sucesso"})
}
