package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

// ListByVideo returns a page of a video's comments, newest first, with the
// author's username joined in.
func (r *CommentRepo) ListByVideo(ctx context.Context, videoID int64, page, limit int) ([]model.Comment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE video_id = $1`, videoID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT c.id, c.video_id, c.user_id, u.username, c.content, c.created_at, c.updated_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, videoID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := make([]model.Comment, 0, limit)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.VideoID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

// FindByID returns a single comment by primary key.
func (r *CommentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	query := `
		SELECT c.id, c.video_id, c.user_id, u.username, c.content, c.created_at, c.updated_at
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`

	var c model.Comment
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&c.ID, &c.VideoID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new comment.
func (r *CommentRepo) Create(ctx context.Context, videoID, userID int64, content string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (video_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, video_id, user_id, content, created_at, updated_at`

	var c model.Comment
	err := r.pool.QueryRow(ctx, query, videoID, userID, content).
		Scan(&c.ID, &c.VideoID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update replaces a comment's content.
func (r *CommentRepo) Update(ctx context.Context, id int64, content string) (*model.Comment, error) {
	query := `
		UPDATE comments SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, video_id, user_id, content, created_at, updated_at`

	var c model.Comment
	err := r.pool.QueryRow(ctx, query, id, content).
		Scan(&c.ID, &c.VideoID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a comment.
func (r *CommentRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// LastCommentAt returns the timestamp of the user's most recent comment.
// Used by the cooldown check when Redis is unavailable. Returns zero time
// when the user has never commented.
func (r *CommentRepo) LastCommentAt(ctx context.Context, userID int64) (time.Time, error) {
	var at time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT created_at FROM comments
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, userID).Scan(&at)
	if err == pgx.ErrNoRows {
		return time.Time{}, nil
	}
	return at, err
}
