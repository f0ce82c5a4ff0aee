package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

const videoColumns = `id, title, youtube_id, description, category_id, subcategory_id,
	duration, views, thumbnail_url, published_at, created_at, updated_at`

// qualifyColumns prefixes every column in a comma-separated list with the
// given table alias. A plain substring rewrite is not safe here: "id" is a
// suffix of youtube_id, category_id, and subcategory_id.
func qualifyColumns(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func scanVideo(row pgxRow, v *model.Video) error {
	return row.Scan(
		&v.ID, &v.Title, &v.YouTubeID, &v.Description, &v.CategoryID, &v.SubcategoryID,
		&v.Duration, &v.Views, &v.ThumbnailURL, &v.PublishedAt, &v.CreatedAt, &v.UpdatedAt,
	)
}

// filterClause builds the WHERE clause and arguments for a video filter.
func filterClause(f model.VideoFilter) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CategoryID != nil {
		add("v.category_id = $%d", *f.CategoryID)
	}
	if f.SubcategoryID != nil {
		add("v.subcategory_id = $%d", *f.SubcategoryID)
	}
	if f.TagID != nil {
		add("EXISTS (SELECT 1 FROM video_tags vt WHERE vt.video_id = v.id AND vt.tag_id = $%d)", *f.TagID)
	}
	if f.Search != "" {
		add("v.title ILIKE '%%' || $%d || '%%'", f.Search)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns a page of videos matching the filter plus the total count.
func (r *VideoRepo) List(ctx context.Context, f model.VideoFilter, page, limit int) ([]model.Video, int, error) {
	where, args := filterClause(f)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM videos v`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		%s
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT $%d OFFSET $%d`,
		qualifyColumns(videoColumns, "v"), where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	videos := make([]model.Video, 0, limit)
	for rows.Next() {
		var v model.Video
		if err := scanVideo(rows, &v); err != nil {
			return nil, 0, err
		}
		videos = append(videos, v)
	}
	return videos, total, rows.Err()
}

// FindByID returns a single video by primary key.
func (r *VideoRepo) FindByID(ctx context.Context, id int64) (*model.Video, error) {
	var v model.Video
	err := scanVideo(r.pool.QueryRow(ctx, `SELECT `+videoColumns+` FROM videos WHERE id = $1`, id), &v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a new video. The youtube_id unique constraint rejects
// duplicates.
func (r *VideoRepo) Create(ctx context.Context, req model.VideoCreateRequest) (*model.Video, error) {
	query := `
		INSERT INTO videos (title, youtube_id, description, category_id, subcategory_id, duration, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + videoColumns

	var v model.Video
	err := scanVideo(r.pool.QueryRow(ctx, query,
		req.Title, req.YouTubeID, req.Description, req.CategoryID,
		req.SubcategoryID, req.Duration, req.ThumbnailURL), &v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Update applies a partial update. Nil fields keep their current values.
func (r *VideoRepo) Update(ctx context.Context, id int64, req model.VideoUpdateRequest) (*model.Video, error) {
	query := `
		UPDATE videos
		SET title          = COALESCE($2, title),
		    description    = COALESCE($3, description),
		    category_id    = COALESCE($4, category_id),
		    subcategory_id = COALESCE($5, subcategory_id),
		    duration       = COALESCE($6, duration),
		    thumbnail_url  = COALESCE($7, thumbnail_url),
		    updated_at     = NOW()
		WHERE id = $1
		RETURNING ` + videoColumns

	var v model.Video
	err := scanVideo(r.pool.QueryRow(ctx, query, id,
		req.Title, req.Description, req.CategoryID,
		req.SubcategoryID, req.Duration, req.ThumbnailURL), &v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Delete removes a video. Comments, ratings, and tag links cascade.
func (r *VideoRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementViews bumps the view counter and returns the fresh total, so
// cached responses report the live count instead of a stale snapshot.
func (r *VideoRepo) IncrementViews(ctx context.Context, id int64) (int64, error) {
	var views int64
	err := r.pool.QueryRow(ctx,
		`UPDATE videos SET views = views + 1 WHERE id = $1 RETURNING views`, id).Scan(&views)
	return views, err
}

// Upsert inserts or refreshes a video keyed by its YouTube ID. Used by the
// playlist importer so re-imports update instead of duplicating.
// Returns the video and whether a new row was inserted.
func (r *VideoRepo) Upsert(ctx context.Context, title, youtubeID, description, thumbnailURL string,
	duration int, publishedAt *time.Time, categoryID *int64) (*model.Video, bool, error) {

	query := `
		INSERT INTO videos (title, youtube_id, description, thumbnail_url, duration, published_at, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (youtube_id) DO UPDATE
		SET title         = EXCLUDED.title,
		    description   = EXCLUDED.description,
		    thumbnail_url = EXCLUDED.thumbnail_url,
		    duration      = CASE WHEN EXCLUDED.duration > 0 THEN EXCLUDED.duration ELSE videos.duration END,
		    published_at  = EXCLUDED.published_at,
		    updated_at    = NOW()
		RETURNING ` + videoColumns + `, (xmax = 0) AS inserted`

	var v model.Video
	var inserted bool
	err := r.pool.QueryRow(ctx, query,
		title, youtubeID, description, thumbnailURL, duration, publishedAt, categoryID).Scan(
		&v.ID, &v.Title, &v.YouTubeID, &v.Description, &v.CategoryID, &v.SubcategoryID,
		&v.Duration, &v.Views, &v.ThumbnailURL, &v.PublishedAt, &v.CreatedAt, &v.UpdatedAt,
		&inserted,
	)
	if err != nil {
		return nil, false, err
	}
	return &v, inserted, nil
}

// SetTags replaces a video's tag set atomically.
func (r *VideoRepo) SetTags(ctx context.Context, videoID int64, tagIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM video_tags WHERE video_id = $1`, videoID); err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO video_tags (video_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, videoID, tagID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetTags returns a video's tags ordered by name.
func (r *VideoRepo) GetTags(ctx context.Context, videoID int64) ([]model.Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN video_tags vt ON vt.tag_id = t.id
		WHERE vt.video_id = $1
		ORDER BY t.name`

	rows, err := r.pool.Query(ctx, query, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
