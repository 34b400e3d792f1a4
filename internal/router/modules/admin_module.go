package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/castwave/castwave/internal/container"
	handlers "github.com/castwave/castwave/internal/interface/http"
	"github.com/castwave/castwave/internal/interface/middleware"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
}

func NewAdminModule(h *handlers.AdminHandler) *AdminModule {
	return &AdminModule{Handler: h}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP())
	rg.GET("/setup-admin", rl, m.Handler.SetupAdmin)
}
