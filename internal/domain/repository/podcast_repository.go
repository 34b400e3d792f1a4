package repository

import (
	"context"

	"github.com/castwave/castwave/internal/domain/entity"
)

// Stat names accepted by IncrementStat.
const (
	StatPlays  = "plays"
	StatLikes  = "likes"
	StatShares = "shares"
)

// PodcastRepository defines the interface for podcast persistence.
type PodcastRepository interface {
	Create(ctx context.Context, p *entity.Podcast) error
	ListTrending(ctx context.Context, limit int) ([]*entity.Podcast, error)
	ListByUser(ctx context.Context, userID string, limit, skip int) ([]*entity.Podcast, error)
	// IncrementStat adds one to the named counter. It returns ErrNotFound
	// when no podcast has the given id.
	IncrementStat(ctx context.Context, podcastID, stat string) error
}
