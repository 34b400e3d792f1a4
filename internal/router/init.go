package router

import (
	"github.com/castwave/castwave/internal/application"
	"github.com/castwave/castwave/internal/container"
	"github.com/castwave/castwave/internal/infrastructure/media"
	pginfra "github.com/castwave/castwave/internal/infrastructure/postgres"
	handlers "github.com/castwave/castwave/internal/interface/http"
	"github.com/castwave/castwave/internal/router/modules"
)

func buildAuthService() *application.AuthService {
	cfg := container.GetConfig()
	users := pginfra.NewUserRepository(container.GetPGPool())
	return application.NewAuthService(
		users,
		container.GetJWT(),
		container.GetLogger(),
		container.GetMailPub(),
		cfg.AdminEmail,
		cfg.AdminUsername,
		cfg.AdminPassword,
	)
}

func buildPodcastService() *application.PodcastService {
	cfg := container.GetConfig()
	return &application.PodcastService{
		Podcasts: pginfra.NewPodcastRepository(container.GetPGPool()),
		Users:    pginfra.NewUserRepository(container.GetPGPool()),

		Script: container.GetGenAI(),
		Thumbs: container.GetGenAI(),
		Speech: container.GetSpeech(),
		Media:  media.NewGCSStore(container.GetGCS(), cfg.GCSBucket),

		Redis:   container.GetRedis(),
		Logger:  container.GetLogger(),
		ES:      container.GetES(),
		ESIndex: cfg.ESPodcastsIndex,

		TmpDir: cfg.AudioTmpDir,

		DemoEmail:    cfg.DemoEmail,
		DemoUsername: cfg.DemoUsername,
		DemoPassword: cfg.DemoPassword,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	logger := container.GetLogger()
	jwt := container.GetJWT()

	authSvc := buildAuthService()
	podSvc := buildPodcastService()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt))
	r.Add(modules.NewPodcastModule(handlers.NewPodcastHandler(podSvc, logger), jwt))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(authSvc, logger)))
	r.Add(modules.NewDebugModule())
}
