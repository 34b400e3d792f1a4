package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/castwave/castwave/internal/container"
	handlers "github.com/castwave/castwave/internal/interface/http"
	"github.com/castwave/castwave/internal/interface/middleware"
	"github.com/castwave/castwave/pkg/helpers"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	rg.GET("/auth/verify-token", middleware.Auth(m.JWT), m.Handler.VerifyToken)
}
