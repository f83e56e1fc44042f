package http

import (
	"net/http"

	"certbank-service/internal/app"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	provider app.StatsProvider
}

func NewStatsHandler(provider app.StatsProvider) *StatsHandler {
	return &StatsHandler{provider: provider}
}

func (h *StatsHandler) Stats(c *gin.Context) {
	stats, err := h.provider.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar estatísticas"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
