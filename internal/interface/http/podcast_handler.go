package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/castwave/castwave/internal/application"
	"github.com/castwave/castwave/internal/domain/entity"
	repo "github.com/castwave/castwave/internal/domain/repository"
	"github.com/castwave/castwave/internal/interface/middleware"
	"github.com/castwave/castwave/pkg/response"
	"github.com/castwave/castwave/pkg/validation"
)

// actionToStat maps the URL action segment to its counter column.
var actionToStat = map[string]string{
	"play":  repo.StatPlays,
	"like":  repo.StatLikes,
	"share": repo.StatShares,
}

type PodcastHandler struct {
	Svc    *application.PodcastService
	Logger *logrus.Logger
}

func NewPodcastHandler(svc *application.PodcastService, logger *logrus.Logger) *PodcastHandler {
	return &PodcastHandler{Svc: svc, Logger: logger}
}

type generateRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Voice    string `json:"voice"`
	Language string `json:"language"`
}

type podcastJSON struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id,omitempty"`
	Topic        string `json:"topic"`
	Script       string `json:"script"`
	AudioURL     string `json:"audio_url"`
	ThumbnailURL string `json:"thumbnail_url"`
	Voice        string `json:"voice"`
	Language     string `json:"language"`
	Plays        int64  `json:"plays"`
	Likes        int64  `json:"likes"`
	Shares       int64  `json:"shares"`
	CreatedAt    string `json:"created_at"`
}

func toPodcastJSON(p *entity.Podcast) podcastJSON {
	return podcastJSON{
		ID:           p.ID,
		UserID:       p.UserID,
		Topic:        p.Topic,
		Script:       p.Script,
		AudioURL:     p.AudioURL,
		ThumbnailURL: p.ThumbnailURL,
		Voice:        p.Voice,
		Language:     p.Language,
		Plays:        p.Plays,
		Likes:        p.Likes,
		Shares:       p.Shares,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toPodcastList(ps []*entity.Podcast) []podcastJSON {
	out := make([]podcastJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPodcastJSON(p))
	}
	return out
}

func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// Generate handles POST /generate-podcast. A valid bearer token, when
// present, makes the caller the owner of the new podcast.
func (h *PodcastHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, validation.Message(err))
		return
	}

	p, err := h.Svc.Generate(c.Request.Context(), application.GenerateInput{
		Topic:    req.Topic,
		Voice:    req.Voice,
		Language: req.Language,
		UserID:   c.GetString(middleware.CtxUserIDKey),
	})
	if err != nil {
		response.ErrorFrom(c, http.StatusInternalServerError, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"message": "Podcast generated successfully",
		"podcast": toPodcastJSON(p),
	})
}

// SeedSamples handles POST /seed-sample-podcasts
func (h *PodcastHandler) SeedSamples(c *gin.Context) {
	created, err := h.Svc.SeedSamples(c.Request.Context())
	if err != nil {
		response.ErrorFrom(c, http.StatusInternalServerError, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"message":  "Created " + strconv.Itoa(len(created)) + " sample podcasts",
		"podcasts": toPodcastList(created),
	})
}

// Trending handles GET /trending-podcasts?limit=
func (h *PodcastHandler) Trending(c *gin.Context) {
	limit := queryInt(c, "limit", 10)
	ps, err := h.Svc.Trending(c.Request.Context(), limit)
	if err != nil {
		h.Logger.WithError(err).Error("trending listing failed")
		response.ErrorFrom(c, http.StatusInternalServerError, err)
		return
	}
	response.JSON(c, http.StatusOK, toPodcastList(ps))
}

// ByUser handles GET /user-podcasts/:user_id?limit=&skip=
func (h *PodcastHandler) ByUser(c *gin.Context) {
	userID := c.Param("user_id")
	limit := queryInt(c, "limit", 10)
	skip := queryInt(c, "skip", 0)

	ps, err := h.Svc.ByUser(c.Request.Context(), userID, limit, skip)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", userID).Error("user listing failed")
		response.ErrorFrom(c, http.StatusInternalServerError, err)
		return
	}
	response.JSON(c, http.StatusOK, toPodcastList(ps))
}

// UpdateStats handles POST /podcast/:podcast_id/:action
func (h *PodcastHandler) UpdateStats(c *gin.Context) {
	action := c.Param("action")
	stat, ok := actionToStat[action]
	if !ok {
		response.Error(c, http.StatusBadRequest, "Invalid action")
		return
	}

	err := h.Svc.IncrementStat(c.Request.Context(), c.Param("podcast_id"), stat)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Podcast not found")
			return
		}
		h.Logger.WithError(err).Error("stat update failed")
		response.ErrorFrom(c, http.StatusInternalServerError, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "Updated " + action + " count"})
}

// Search handles GET /search-podcasts?q=&limit=
func (h *PodcastHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "q is required")
		return
	}
	hits, err := h.Svc.Search(c.Request.Context(), q, queryInt(c, "limit", 10))
	if err != nil {
		h.Logger.WithError(err).Error("podcast search failed")
		response.ErrorFrom(c, http.StatusInternalServerError, err)
		return
	}
	response.JSON(c, http.StatusOK, hits)
}
