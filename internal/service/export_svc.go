package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

// ExportService produces the full-catalog dump used for backups and
// external consumers. It reads straight from the pool: the export spans
// every table and does not fit the per-entity repositories.
type ExportService struct {
	pool *pgxpool.Pool
}

func NewExportService(pool *pgxpool.Pool) *ExportService {
	return &ExportService{pool: pool}
}

// FullCatalog returns every category, subcategory, tag and video, with
// tags attached per video.
func (s *ExportService) FullCatalog(ctx context.Context) (*model.CatalogExport, error) {
	export := &model.CatalogExport{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Categories:    []model.Category{},
		Subcategories: []model.Subcategory{},
		Tags:          []model.Tag{},
		Videos:        []model.Video{},
	}

	catRows, err := s.pool.Query(ctx, `
		SELECT id, name, slug, parent_id, created_at, updated_at
		FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()
	for catRows.Next() {
		var c model.Category
		if err := catRows.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		export.Categories = append(export.Categories, c)
	}
	if err := catRows.Err(); err != nil {
		return nil, err
	}

	subRows, err := s.pool.Query(ctx, `
		SELECT id, name, slug, category_id, created_at, updated_at
		FROM subcategories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()
	for subRows.Next() {
		var sc model.Subcategory
		if err := subRows.Scan(&sc.ID, &sc.Name, &sc.Slug, &sc.CategoryID, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, err
		}
		export.Subcategories = append(export.Subcategories, sc)
	}
	if err := subRows.Err(); err != nil {
		return nil, err
	}

	tagRows, err := s.pool.Query(ctx, `SELECT id, name, slug FROM tags ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer tagRows.Close()
	tagsByID := make(map[int64]model.Tag)
	for tagRows.Next() {
		var t model.Tag
		if err := tagRows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tagsByID[t.ID] = t
		export.Tags = append(export.Tags, t)
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	videoRows, err := s.pool.Query(ctx, `
		SELECT id, title, youtube_id, description, category_id, subcategory_id,
		       duration, views, thumbnail_url, published_at, created_at, updated_at
		FROM videos ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer videoRows.Close()
	videoIndex := make(map[int64]int)
	for videoRows.Next() {
		var v model.Video
		if err := videoRows.Scan(&v.ID, &v.Title, &v.YouTubeID, &v.Description,
			&v.CategoryID, &v.SubcategoryID, &v.Duration, &v.Views,
			&v.ThumbnailURL, &v.PublishedAt, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		videoIndex[v.ID] = len(export.Videos)
		export.Videos = append(export.Videos, v)
	}
	if err := videoRows.Err(); err != nil {
		return nil, err
	}

	// One pass over the join table instead of a query per video.
	vtRows, err := s.pool.Query(ctx, `SELECT video_id, tag_id FROM video_tags ORDER BY video_id, tag_id`)
	if err != nil {
		return nil, err
	}
	defer vtRows.Close()
	for vtRows.Next() {
		var videoID, tagID int64
		if err := vtRows.Scan(&videoID, &tagID); err != nil {
			return nil, err
		}
		idx, ok := videoIndex[videoID]
		if !ok {
			continue
		}
		if tag, ok := tagsByID[tagID]; ok {
			export.Videos[idx].Tags = append(export.Videos[idx].Tags, tag)
		}
	}
	if err := vtRows.Err(); err != nil {
		return nil, err
	}

	return export, nil
}
