package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

type RatingRepo struct {
	pool *pgxpool.Pool
}

func NewRatingRepo(pool *pgxpool.Pool) *RatingRepo {
	return &RatingRepo{pool: pool}
}

// ratingUpsertSQL replaces the score on conflict with the (video_id,
// user_id) primary key, so a pair can never hold two rows.
const ratingUpsertSQL = `
	INSERT INTO ratings (video_id, user_id, score)
	VALUES ($1, $2, $3)
	ON CONFLICT (video_id, user_id) DO UPDATE
	SET score = EXCLUDED.score, updated_at = NOW()
	RETURNING video_id, user_id, score, created_at, updated_at`

// Upsert inserts or replaces a user's rating for a video using atomic SQL.
// A second submission overwrites the score.
func (r *RatingRepo) Upsert(ctx context.Context, videoID, userID int64, score int) (*model.Rating, error) {
	var rating model.Rating
	err := r.pool.QueryRow(ctx, ratingUpsertSQL, videoID, userID, score).
		Scan(&rating.VideoID, &rating.UserID, &rating.Score, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindScore returns the user's rating for a video, or nil when unrated.
func (r *RatingRepo) FindScore(ctx context.Context, videoID, userID int64) (*int, error) {
	var score int
	err := r.pool.QueryRow(ctx, `
		SELECT score FROM ratings WHERE video_id = $1 AND user_id = $2`,
		videoID, userID).Scan(&score)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// Average returns the video's average score rounded to two decimals, plus
// the rating count. Zero average when unrated.
func (r *RatingRepo) Average(ctx context.Context, videoID int64) (float64, int, error) {
	var avg float64
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(ROUND(AVG(score)::numeric, 2), 0), COUNT(*)
		FROM ratings
		WHERE video_id = $1`, videoID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
