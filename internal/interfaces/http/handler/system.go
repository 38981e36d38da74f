package handler

import (
	"net/http"

	"github.com/bizledger/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	appName string
	env     string
	db      Pinger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, env string, db Pinger) *SystemHandler {
	return &SystemHandler{appName: appName, env: env, db: db}
}

// Health reports process liveness
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status": "ok",
		"app":    h.appName,
		"env":    h.env,
	})
}

// Ready reports whether the service can reach its dependencies
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrCodeInternal, "Database unreachable"))
			return
		}
	}
	h.Success(c, gin.H{"status": "ready"})
}
