package http

import (
	"net/http"
	"strconv"

	"certbank-service/internal/app"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services groups everything the router needs.
type Services struct {
	Certificacoes *app.CertificacaoService
	Perguntas     *app.PerguntaService
	Usuarios      *app.UsuarioService
	Exports       *app.ExportService
	Stats         app.StatsProvider
}

// NewRouter wires the REST surface under /api, mirroring the original
// dashboard's route table.
func NewRouter(services Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	certificacoes := NewCertificacaoHandler(services.Certificacoes)
	perguntas := NewPerguntaHandler(services.Perguntas)
	usuarios := NewUsuarioHandler(services.Usuarios)
	exports := NewJsonlHandler(services.Exports)
	stats := NewStatsHandler(services.Stats)

	api := router.Group("/api")
	{
		api.GET("/certificacoes", certificacoes.List)
		api.GET("/certificacoes/:id", certificacoes.Get)
		api.POST("/certificacoes", certificacoes.Create)
		api.PUT("/certificacoes/:id", certificacoes.Update)
		api.DELETE("/certificacoes/:id", certificacoes.Delete)

		api.GET("/perguntas", perguntas.List)
		api.GET("/perguntas/certificacao/:id", perguntas.ListByCertificacao)
		api.GET("/perguntas/:id", perguntas.Get)
		api.POST("/perguntas", perguntas.Create)
		api.PUT("/perguntas/:id", perguntas.Update)
		api.DELETE("/perguntas/:id", perguntas.Delete)

		api.GET("/usuarios", usuarios.List)
		api.GET("/usuarios/:id", usuarios.Get)
		api.POST("/usuarios", usuarios.Create)
		api.PUT("/usuarios/:id", usuarios.Update)
		api.DELETE("/usuarios/:id", usuarios.Delete)
		api.GET("/usuarios/:id/certificacoes", usuarios.ListCertificacoes)
		api.POST("/usuarios/:id/certificacoes", usuarios.AddCertificacao)
		api.DELETE("/usuarios/:id/certificacoes/:certId", usuarios.RemoveCertificacao)

		api.POST("/jsonl", exports.Create)
		api.GET("/jsonl/certificacao/:id", exports.Latest)

		api.GET("/stats", stats.Stats)
	}

	return router
}

// paramID parses a numeric path parameter; on failure it answers 400 and
// reports false.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return 0, false
	}
	return id, true
}
