package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/castwave/castwave/internal/domain/entity"
	repo "github.com/castwave/castwave/internal/domain/repository"
	"github.com/castwave/castwave/pkg/helpers"
)

// ScriptGenerator produces a spoken-word script for a topic.
type ScriptGenerator interface {
	GenerateScript(ctx context.Context, topic string) (string, error)
}

// ThumbnailGenerator produces cover art and returns a temporary URL.
type ThumbnailGenerator interface {
	GenerateThumbnail(ctx context.Context, topic string) (string, error)
}

// SpeechSynthesizer renders a script to raw audio bytes with a named voice.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// MediaStore publishes in-flight assets to durable storage.
type MediaStore interface {
	UploadFile(ctx context.Context, localPath, objectPath, contentType string) (string, error)
	UploadFromURL(ctx context.Context, srcURL, objectPath string) (string, error)
}

const trendingCacheTTL = 30 * time.Second

func trendingKey(limit int) string {
	return fmt.Sprintf("podcasts:trending:%d", limit)
}

// Topics used by the sample-seeding entry point.
var sampleTopics = []GenerateInput{
	{Topic: "Introduction to Python Programming", Voice: "Rachel", Language: "English"},
	{Topic: "How the Internet Works", Voice: "Rachel", Language: "English"},
	{Topic: "A Brief History of Space Exploration", Voice: "Rachel", Language: "English"},
}

// PodcastService sequences the external generation steps into one podcast
// record and serves listing, search and stat updates.
type PodcastService struct {
	Podcasts repo.PodcastRepository
	Users    repo.UserRepository

	Script ScriptGenerator
	Thumbs ThumbnailGenerator
	Speech SpeechSynthesizer
	Media  MediaStore

	Redis   *redis.Client
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string

	TmpDir string

	DemoEmail    string
	DemoUsername string
	DemoPassword string
}

// GenerateInput is one podcast-creation request.
type GenerateInput struct {
	Topic    string
	Voice    string
	Language string
	UserID   string // optional owner
}

// Generate runs the four-stage pipeline: script, thumbnail, speech, publish.
// Each stage is an independent failure domain; the first failure aborts the
// rest and its upstream error is surfaced to the caller. Already-uploaded
// media is not rolled back if the store write fails.
func (s *PodcastService) Generate(ctx context.Context, in GenerateInput) (*entity.Podcast, error) {
	if in.Voice == "" {
		in.Voice = "Rachel"
	}
	if in.Language == "" {
		in.Language = "English"
	}

	script, err := s.Script.GenerateScript(ctx, in.Topic)
	if err != nil {
		s.logStageError("script", in.Topic, err)
		return nil, err
	}

	thumbTempURL, err := s.Thumbs.GenerateThumbnail(ctx, in.Topic)
	if err != nil {
		s.logStageError("thumbnail", in.Topic, err)
		return nil, err
	}

	audio, err := s.Speech.Synthesize(ctx, script, in.Voice)
	if err != nil {
		s.logStageError("speech", in.Topic, err)
		return nil, err
	}

	// Timestamp-derived name keeps concurrent requests from colliding; the
	// file is removed on success and on every failure past this point.
	tmpName := fmt.Sprintf("temp_%s.mp3", time.Now().UTC().Format("20060102_150405.000000000"))
	tmpPath := filepath.Join(s.TmpDir, tmpName)
	if err := os.WriteFile(tmpPath, audio, 0o600); err != nil {
		s.logStageError("speech", in.Topic, err)
		return nil, fmt.Errorf("write audio file: %w", err)
	}
	defer func() { _ = os.Remove(tmpPath) }()

	audioURL, err := s.Media.UploadFile(ctx, tmpPath, "podcasts/"+tmpName, "audio/mpeg")
	if err != nil {
		s.logStageError("publish", in.Topic, err)
		return nil, fmt.Errorf("publish audio: %w", err)
	}
	thumbURL, err := s.Media.UploadFromURL(ctx, thumbTempURL, "podcast_thumbnails/"+uuid.NewString()+".png")
	if err != nil {
		s.logStageError("publish", in.Topic, err)
		return nil, fmt.Errorf("publish thumbnail: %w", err)
	}

	p := &entity.Podcast{
		UserID:       in.UserID,
		Topic:        in.Topic,
		Script:       script,
		AudioURL:     audioURL,
		ThumbnailURL: thumbURL,
		Voice:        in.Voice,
		Language:     in.Language,
	}
	if err := s.Podcasts.Create(ctx, p); err != nil {
		s.logStageError("store", in.Topic, err)
		return nil, fmt.Errorf("store podcast: %w", err)
	}

	s.invalidateTrending(ctx)
	s.indexPodcast(ctx, p)
	return p, nil
}

// SeedSamples ensures the demo user exists, then runs the pipeline over the
// fixed topic list. A failing topic is skipped; an error is returned only
// when nothing could be created.
func (s *PodcastService) SeedSamples(ctx context.Context) ([]*entity.Podcast, error) {
	demo, err := s.ensureDemoUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("ensure demo user: %w", err)
	}

	created := make([]*entity.Podcast, 0, len(sampleTopics))
	for _, in := range sampleTopics {
		in.UserID = demo.ID
		p, err := s.Generate(ctx, in)
		if err != nil {
			if s.Logger != nil {
				s.Logger.WithError(err).WithField("topic", in.Topic).Error("seed topic failed, skipping")
			}
			continue
		}
		created = append(created, p)
	}
	if len(created) == 0 {
		return nil, errors.New("failed to create any podcasts")
	}
	return created, nil
}

func (s *PodcastService) ensureDemoUser(ctx context.Context) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, s.DemoEmail)
	if err == nil && u != nil {
		return u, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	hash, err := helpers.HashPassword(s.DemoPassword)
	if err != nil {
		return nil, err
	}
	u = &entity.User{
		Username: s.DemoUsername,
		Email:    s.DemoEmail,
		Password: hash,
		Role:     entity.RoleUser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Trending lists podcasts by plays then likes, serving from a short-lived
// redis cache when available.
func (s *PodcastService) Trending(ctx context.Context, limit int) ([]*entity.Podcast, error) {
	if limit <= 0 {
		limit = 10
	}
	if s.Redis != nil {
		var cached []*entity.Podcast
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, trendingKey(limit), &cached); err == nil && ok {
			return cached, nil
		}
	}
	out, err := s.Podcasts.ListTrending(ctx, limit)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, trendingKey(limit), out, trendingCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("trending cache write failed")
		}
	}
	return out, nil
}

// ByUser lists a user's podcasts with offset pagination.
func (s *PodcastService) ByUser(ctx context.Context, userID string, limit, skip int) ([]*entity.Podcast, error) {
	if limit <= 0 {
		limit = 10
	}
	if skip < 0 {
		skip = 0
	}
	return s.Podcasts.ListByUser(ctx, userID, limit, skip)
}

// IncrementStat bumps one counter by exactly one. repository.ErrNotFound
// propagates when the podcast does not exist.
func (s *PodcastService) IncrementStat(ctx context.Context, podcastID, stat string) error {
	if err := s.Podcasts.IncrementStat(ctx, podcastID, stat); err != nil {
		return err
	}
	s.invalidateTrending(ctx)
	return nil
}

func (s *PodcastService) invalidateTrending(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	// Only the default page size is commonly cached; other limits expire via TTL.
	if err := s.Redis.Del(ctx, trendingKey(10)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Debug("trending cache invalidation failed")
	}
}

func (s *PodcastService) logStageError(stage, topic string, err error) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithFields(logrus.Fields{"stage": stage, "topic": topic}).Error("podcast generation stage failed")
}

func (s *PodcastService) indexPodcast(ctx context.Context, p *entity.Podcast) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":            p.ID,
		"user_id":       p.UserID,
		"topic":         p.Topic,
		"script":        p.Script,
		"audio_url":     p.AudioURL,
		"thumbnail_url": p.ThumbnailURL,
		"voice":         p.Voice,
		"language":      p.Language,
		"created_at":    p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("podcast_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("podcast_id", p.ID).Warn("es index response error")
	}
}

// Search performs a multi_match query over topic and script.
func (s *PodcastService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"topic^2", "script"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
