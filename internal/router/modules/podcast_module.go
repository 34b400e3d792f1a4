package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/castwave/castwave/internal/container"
	handlers "github.com/castwave/castwave/internal/interface/http"
	"github.com/castwave/castwave/internal/interface/middleware"
	"github.com/castwave/castwave/pkg/helpers"
)

type PodcastModule struct {
	Handler *handlers.PodcastHandler
	JWT     *helpers.JWTManager
}

func NewPodcastModule(h *handlers.PodcastHandler, jwt *helpers.JWTManager) *PodcastModule {
	return &PodcastModule{Handler: h, JWT: jwt}
}

func (m *PodcastModule) Register(rg *gin.RouterGroup) {
	// Generation hits three paid vendor APIs per call, so it gets the
	// tightest limit. Ownership is optional: anonymous callers create
	// unowned podcasts.
	generateLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIP())
	seedLimiter := middleware.RateLimit(container.GetRedis(), 2, time.Minute, middleware.KeyByIP())
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP())
	statLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/generate-podcast", generateLimiter, middleware.OptionalAuth(m.JWT), m.Handler.Generate)
	rg.POST("/seed-sample-podcasts", seedLimiter, m.Handler.SeedSamples)

	rg.GET("/trending-podcasts", readLimiter, m.Handler.Trending)
	rg.GET("/user-podcasts/:user_id", readLimiter, m.Handler.ByUser)
	rg.GET("/search-podcasts", readLimiter, m.Handler.Search)

	rg.POST("/podcast/:podcast_id/:action", statLimiter, m.Handler.UpdateStats)
}
