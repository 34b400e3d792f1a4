package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/castwave/castwave/internal/application"
	"github.com/castwave/castwave/internal/domain/entity"
	repo "github.com/castwave/castwave/internal/domain/repository"
	"github.com/castwave/castwave/internal/interface/middleware"
	"github.com/castwave/castwave/pkg/helpers"
	"github.com/castwave/castwave/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(bytes.NewBuffer(nil))
	return l
}

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return repo.ErrEmailTaken
	}
	u.ID = uuid.NewString()
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, id, role string) error {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.Role = role
			return nil
		}
	}
	return repo.ErrNotFound
}

type memPodcastRepo struct {
	podcasts map[string]*entity.Podcast
}

func newMemPodcastRepo() *memPodcastRepo {
	return &memPodcastRepo{podcasts: map[string]*entity.Podcast{}}
}

func (r *memPodcastRepo) Create(_ context.Context, p *entity.Podcast) error {
	p.ID = uuid.NewString()
	cp := *p
	r.podcasts[p.ID] = &cp
	return nil
}

func (r *memPodcastRepo) ListTrending(_ context.Context, limit int) ([]*entity.Podcast, error) {
	out := make([]*entity.Podcast, 0, len(r.podcasts))
	for _, p := range r.podcasts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Plays != out[j].Plays {
			return out[i].Plays > out[j].Plays
		}
		return out[i].Likes > out[j].Likes
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPodcastRepo) ListByUser(_ context.Context, userID string, limit, skip int) ([]*entity.Podcast, error) {
	out := make([]*entity.Podcast, 0)
	for _, p := range r.podcasts {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	if skip >= len(out) {
		return []*entity.Podcast{}, nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memPodcastRepo) IncrementStat(_ context.Context, id, stat string) error {
	p, ok := r.podcasts[id]
	if !ok {
		return repo.ErrNotFound
	}
	switch stat {
	case repo.StatPlays:
		p.Plays++
	case repo.StatLikes:
		p.Likes++
	case repo.StatShares:
		p.Shares++
	}
	return nil
}

func newTestJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("handler-test-secret", time.Hour)
}

func newAuthService(users repo.UserRepository) *application.AuthService {
	return application.NewAuthService(users, newTestJWT(), testLogger(), nil, "admin@example.com", "admin", "AdminPass123")
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func authRouter(svc *application.AuthService, jwt *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	h := NewAuthHandler(svc, testLogger())
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/verify-token", middleware.Auth(jwt), h.VerifyToken)
	return r
}
