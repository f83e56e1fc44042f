package http

import (
	"net/http"

	"certbank-service/internal/app"
	"certbank-service/internal/domain"
	"certbank-service/internal/jsonl"
	"github.com/gin-gonic/gin"
)

type JsonlHandler struct {
	service *app.ExportService
}

func NewJsonlHandler(service *app.ExportService) *JsonlHandler {
	return &JsonlHandler{service: service}
}

type jsonlRequest struct {
	CertificacaoID int64  `json:"certificacao_id"`
	Content        string `json:"content"`
	Filename       string `json:"filename"`
}

// Create stores the pre-serialized JSONL content verbatim; the line structure
// is the caller's responsibility.
func (h *JsonlHandler) Create(c *gin.Context) {
	var req jsonlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corpo da requisição inválido"})
		return
	}
	if req.Filename == "" {
		req.Filename = jsonl.DefaultFilename
	}
	file := domain.JsonlFile{
		CertificacaoID: req.CertificacaoID,
		Content:        req.Content,
		Filename:       req.Filename,
	}
	if err := h.service.Create(c.Request.Context(), &file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao salvar arquivo JSONL"})
		return
	}
	c.JSON(http.StatusCreated, file)
}

// Latest answers the most recent export for a certification, or JSON null
// when it has none.
func (h *JsonlHandler) Latest(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	file, err := h.service.Latest(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao buscar arquivo JSONL"})
		return
	}
	if file == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, file)
}
