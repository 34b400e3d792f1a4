package application

import (
	"context"
	"errors"
	"os"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/castwave/castwave/internal/domain/entity"
	repo "github.com/castwave/castwave/internal/domain/repository"
)

type fakePodcastRepo struct {
	podcasts []*entity.Podcast
	nextID   int
	failNext error
}

func (r *fakePodcastRepo) Create(_ context.Context, p *entity.Podcast) error {
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return err
	}
	r.nextID++
	p.ID = "p" + strconv.Itoa(r.nextID)
	cp := *p
	r.podcasts = append(r.podcasts, &cp)
	return nil
}

func (r *fakePodcastRepo) ListTrending(_ context.Context, limit int) ([]*entity.Podcast, error) {
	out := make([]*entity.Podcast, len(r.podcasts))
	copy(out, r.podcasts)
	sort.SliceStable(out, func(i, j int) bool {
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

func (r *fakePodcastRepo) ListByUser(_ context.Context, userID string, limit, skip int) ([]*entity.Podcast, error) {
	out := make([]*entity.Podcast, 0)
	for _, p := range r.podcasts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	if skip >= len(out) {
		return nil, nil
	}
	out = out[skip:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePodcastRepo) IncrementStat(_ context.Context, podcastID, stat string) error {
	for _, p := range r.podcasts {
		if p.ID != podcastID {
			continue
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
	return repo.ErrNotFound
}

type stubScript struct{ err error }

func (s stubScript) GenerateScript(context.Context, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "Welcome to the show. Today we talk about things.", nil
}

type stubThumbs struct{ err error }

func (s stubThumbs) GenerateThumbnail(context.Context, string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://vendor.example.com/tmp/thumb.png", nil
}

type stubSpeech struct{ err error }

func (s stubSpeech) Synthesize(context.Context, string, string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte("mp3-bytes"), nil
}

type fakeMedia struct {
	fileUploads int
	urlUploads  int
	failFile    error
	failURL     error
}

func (m *fakeMedia) UploadFile(_ context.Context, localPath, objectPath, _ string) (string, error) {
	if m.failFile != nil {
		return "", m.failFile
	}
	if _, err := os.Stat(localPath); err != nil {
		return "", err
	}
	m.fileUploads++
	return "https://storage.googleapis.com/bucket/" + objectPath, nil
}

func (m *fakeMedia) UploadFromURL(_ context.Context, _, objectPath string) (string, error) {
	if m.failURL != nil {
		return "", m.failURL
	}
	m.urlUploads++
	return "https://storage.googleapis.com/bucket/" + objectPath, nil
}

func newPodcastService(t *testing.T, podcasts *fakePodcastRepo, users repo.UserRepository) (*PodcastService, *fakeMedia) {
	t.Helper()
	media := &fakeMedia{}
	return &PodcastService{
		Podcasts:     podcasts,
		Users:        users,
		Script:       stubScript{},
		Thumbs:       stubThumbs{},
		Speech:       stubSpeech{},
		Media:        media,
		TmpDir:       t.TempDir(),
		DemoEmail:    "demo@example.com",
		DemoUsername: "demo",
		DemoPassword: "DemoPass1",
	}, media
}

func requireEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries, "transient audio files must not leak")
}

func TestPodcastService_Generate(t *testing.T) {
	podcasts := &fakePodcastRepo{}
	s, media := newPodcastService(t, podcasts, newFakeUserRepo())

	p, err := s.Generate(context.Background(), GenerateInput{Topic: "Intro to X", Voice: "Rachel", Language: "English", UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, podcasts.podcasts, 1)
	require.Equal(t, "u1", p.UserID)
	require.NotEmpty(t, p.AudioURL)
	require.NotEmpty(t, p.ThumbnailURL)
	require.Zero(t, p.Plays)
	require.Zero(t, p.Likes)
	require.Zero(t, p.Shares)
	require.Equal(t, 1, media.fileUploads)
	require.Equal(t, 1, media.urlUploads)
	requireEmptyDir(t, s.TmpDir)
}

func TestPodcastService_Generate_Defaults(t *testing.T) {
	podcasts := &fakePodcastRepo{}
	s, _ := newPodcastService(t, podcasts, newFakeUserRepo())

	p, err := s.Generate(context.Background(), GenerateInput{Topic: "Intro to X"})
	require.NoError(t, err)
	require.Equal(t, "Rachel", p.Voice)
	require.Equal(t, "English", p.Language)
	require.Empty(t, p.UserID)
}

func TestPodcastService_Generate_SpeechFailure(t *testing.T) {
	podcasts := &fakePodcastRepo{}
	s, media := newPodcastService(t, podcasts, newFakeUserRepo())
	s.Speech = stubSpeech{err: errors.New("voice limit exceeded")}

	_, err := s.Generate(context.Background(), GenerateInput{Topic: "Intro to X"})
	require.ErrorContains(t, err, "voice limit exceeded")
	require.Empty(t, podcasts.podcasts, "no partial record on stage failure")
	require.Zero(t, media.fileUploads)
	require.Zero(t, media.urlUploads)
	requireEmptyDir(t, s.TmpDir)
}

func TestPodcastService_Generate_PublishFailureCleansUp(t *testing.T) {
	podcasts := &fakePodcastRepo{}
	s, media := newPodcastService(t, podcasts, newFakeUserRepo())
	media.failURL = errors.New("bucket unavailable")

	_, err := s.Generate(context.Background(), GenerateInput{Topic: "Intro to X"})
	require.ErrorContains(t, err, "publish thumbnail")
	require.Empty(t, podcasts.podcasts)
	// the audio file was written and must be removed even though upload of
	// the thumbnail failed afterwards
	requireEmptyDir(t, s.TmpDir)
}

func TestPodcastService_Generate_StoreFailure(t *testing.T) {
	podcasts := &fakePodcastRepo{failNext: errors.New("connection reset")}
	s, media := newPodcastService(t, podcasts, newFakeUserRepo())

	_, err := s.Generate(context.Background(), GenerateInput{Topic: "Intro to X"})
	require.ErrorContains(t, err, "store podcast")
	require.Empty(t, podcasts.podcasts)
	// uploaded media is not rolled back
	require.Equal(t, 1, media.fileUploads)
	require.Equal(t, 1, media.urlUploads)
	requireEmptyDir(t, s.TmpDir)
}

func TestPodcastService_SeedSamples(t *testing.T) {
	podcasts := &fakePodcastRepo{}
	users := newFakeUserRepo()
	s, _ := newPodcastService(t, podcasts, users)

	created, err := s.SeedSamples(context.Background())
	require.NoError(t, err)
	require.Len(t, created, len(sampleTopics))

	demo, err := users.GetByEmail(context.Background(), "demo@example.com")
	require.NoError(t, err)
	for _, p := range created {
		require.Equal(t, demo.ID, p.UserID)
	}

	// second run reuses the demo user
	_, err = s.SeedSamples(context.Background())
	require.NoError(t, err)
	require.Len(t, users.byEmail, 1)
}

func TestPodcastService_SeedSamples_AllFail(t *testing.T) {
	podcasts := &fakePodcastRepo{}
	s, _ := newPodcastService(t, podcasts, newFakeUserRepo())
	s.Script = stubScript{err: errors.New("quota exhausted")}

	_, err := s.SeedSamples(context.Background())
	require.ErrorContains(t, err, "failed to create any podcasts")
}

func TestPodcastService_IncrementStat(t *testing.T) {
	podcasts := &fakePodcastRepo{}
	s, _ := newPodcastService(t, podcasts, newFakeUserRepo())
	ctx := context.Background()

	p, err := s.Generate(ctx, GenerateInput{Topic: "Intro to X"})
	require.NoError(t, err)

	require.NoError(t, s.IncrementStat(ctx, p.ID, repo.StatPlays))
	require.NoError(t, s.IncrementStat(ctx, p.ID, repo.StatPlays))
	require.NoError(t, s.IncrementStat(ctx, p.ID, repo.StatLikes))

	stored := podcasts.podcasts[0]
	require.EqualValues(t, 2, stored.Plays)
	require.EqualValues(t, 1, stored.Likes)
	require.EqualValues(t, 0, stored.Shares)

	require.ErrorIs(t, s.IncrementStat(ctx, "missing", repo.StatShares), repo.ErrNotFound)
}

func TestPodcastService_Trending_Order(t *testing.T) {
	podcasts := &fakePodcastRepo{}
	s, _ := newPodcastService(t, podcasts, newFakeUserRepo())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Generate(ctx, GenerateInput{Topic: "t"})
		require.NoError(t, err)
	}
	podcasts.podcasts[0].Plays = 5
	podcasts.podcasts[1].Plays = 9
	podcasts.podcasts[2].Plays = 9
	podcasts.podcasts[2].Likes = 4

	out, err := s.Trending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, podcasts.podcasts[2].ID, out[0].ID)
	require.Equal(t, podcasts.podcasts[1].ID, out[1].ID)
}
