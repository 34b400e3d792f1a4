package modules

import (
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/castwave/castwave/internal/container"
	"github.com/castwave/castwave/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if container.GetConfig() != nil && container.GetConfig().DebugMetricsEnabled {
		// Public metrics endpoint (expvar), rate-limited per IP
		rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())
		rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	}
}
