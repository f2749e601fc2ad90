package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rafabene/avantpro-admin/internal/infrastructure/persistence/postgres"
)

// HealthHandler responde as verificações de saúde
type HealthHandler struct {
	db  *gorm.DB
	env string
}

// NewHealthHandler cria um novo HealthHandler
func NewHealthHandler(db *gorm.DB, env string) *HealthHandler {
	return &HealthHandler{db: db, env: env}
}

// Live informa que o processo está de pé
//
//	@Summary	Health check
//	@Tags		health
//	@Produce	json
//	@Success	200
//	@Router		/health [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"env":    h.env,
	})
}

// Ready verifica a conexão com o banco
//
//	@Summary	Readiness check
//	@Tags		health
//	@Produce	json
//	@Success	200
//	@Failure	503
//	@Router		/health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	if err := postgres.Ping(c.Request.Context(), h.db); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
