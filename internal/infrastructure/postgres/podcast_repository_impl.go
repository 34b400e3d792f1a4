package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/castwave/castwave/internal/domain/entity"
	"github.com/castwave/castwave/internal/domain/repository"
)

type PodcastRepository struct {
	pool PgxPool
}

func NewPodcastRepository(pool PgxPool) *PodcastRepository {
	return &PodcastRepository{pool: pool}
}

func (r *PodcastRepository) Create(ctx context.Context, p *entity.Podcast) error {
	var owner any
	if p.UserID != "" {
		owner = p.UserID
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO podcasts (user_id, topic, script, audio_url, thumbnail_url, voice, language)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, plays, likes, shares, created_at
	`, owner, p.Topic, p.Script, p.AudioURL, p.ThumbnailURL, p.Voice, p.Language)

	return row.Scan(&p.ID, &p.Plays, &p.Likes, &p.Shares, &p.CreatedAt)
}

func (r *PodcastRepository) ListTrending(ctx context.Context, limit int) ([]*entity.Podcast, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, topic, script, audio_url, thumbnail_url, voice, language,
		       plays, likes, shares, created_at
		FROM podcasts
		ORDER BY plays DESC, likes DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPodcasts(rows)
}

func (r *PodcastRepository) ListByUser(ctx context.Context, userID string, limit, skip int) ([]*entity.Podcast, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, topic, script, audio_url, thumbnail_url, voice, language,
		       plays, likes, shares, created_at
		FROM podcasts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPodcasts(rows)
}

// IncrementStat bumps exactly one counter by one. The stat name is checked
// against a whitelist before it reaches the SQL text.
func (r *PodcastRepository) IncrementStat(ctx context.Context, podcastID, stat string) error {
	switch stat {
	case repository.StatPlays, repository.StatLikes, repository.StatShares:
	default:
		return fmt.Errorf("unknown stat %q", stat)
	}
	res, err := r.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE podcasts
		SET %s = %s + 1
		WHERE id = $1
	`, stat, stat), podcastID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPodcasts(rows pgx.Rows) ([]*entity.Podcast, error) {
	out := make([]*entity.Podcast, 0)
	for rows.Next() {
		p := &entity.Podcast{}
		var owner sql.NullString
		if err := rows.Scan(&p.ID, &owner, &p.Topic, &p.Script, &p.AudioURL, &p.ThumbnailURL,
			&p.Voice, &p.Language, &p.Plays, &p.Likes, &p.Shares, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.UserID = owner.String
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.PodcastRepository = (*PodcastRepository)(nil)
