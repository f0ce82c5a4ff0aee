package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
)

// ErrDuplicateYouTubeID maps to 409 on video creation.
var ErrDuplicateYouTubeID = errors.New("video with this youtubeId already exists")

type VideoService struct {
	repo     *repository.VideoRepo
	cache    *CacheService
	activity *ActivityService
}

func NewVideoService(repo *repository.VideoRepo, cache *CacheService, activity *ActivityService) *VideoService {
	return &VideoService{repo: repo, cache: cache, activity: activity}
}

// List returns a filtered page of videos with tags attached.
func (s *VideoService) List(ctx context.Context, f model.VideoFilter, page, limit int) (*model.Page[model.Video], error) {
	videos, total, err := s.repo.List(ctx, f, page, limit)
	if err != nil {
		return nil, err
	}

	for i := range videos {
		tags, err := s.repo.GetTags(ctx, videos[i].ID)
		if err != nil {
			return nil, err
		}
		videos[i].Tags = tags
	}

	return &model.Page[model.Video]{Data: videos, Page: page, Limit: limit, Total: total}, nil
}

// Get returns a single video with tags, counting the view. Cache-aside:
// cached responses skip the DB read but still count the view.
func (s *VideoService) Get(ctx context.Context, id int64) (*model.Video, error) {
	if cached, err := s.cache.GetVideo(ctx, id); err == nil && cached != nil {
		var v model.Video
		if err := json.Unmarshal(cached, &v); err == nil {
			s.countView(ctx, id, &v)
			return &v, nil
		}
	}

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.repo.GetTags(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Tags = tags

	if err := s.cache.SetVideo(ctx, id, v); err != nil {
		log.Printf("cache: set video error: %v", err)
	}

	s.countView(ctx, id, v)
	return v, nil
}

// countView bumps the persistent counter and overwrites the in-hand copy
// with the returned total, so a cached snapshot never reports fewer views
// than an earlier response. Best-effort: a failed increment never fails
// the read.
func (s *VideoService) countView(ctx context.Context, id int64, v *model.Video) {
	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		log.Printf("video: view increment error: %v", err)
		return
	}
	v.Views = views
}

// Create adds a video to the catalog and assigns its tags.
func (s *VideoService) Create(ctx context.Context, actorID int64, req model.VideoCreateRequest) (*model.Video, error) {
	v, err := s.repo.Create(ctx, req)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateYouTubeID
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrMissingParent
		}
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		if err := s.repo.SetTags(ctx, v.ID, req.TagIDs); err != nil {
			return nil, err
		}
	}
	tags, err := s.repo.GetTags(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	v.Tags = tags

	s.activity.Record(ctx, &actorID, model.ActionCreate, "video", v.ID, v.Title)
	return v, nil
}

// Update merges non-nil fields into the existing row and, when TagIDs is
// present, replaces the tag set.
func (s *VideoService) Update(ctx context.Context, actorID, id int64, req model.VideoUpdateRequest) (*model.Video, error) {
	v, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrMissingParent
		}
		return nil, err
	}

	if req.TagIDs != nil {
		if err := s.repo.SetTags(ctx, id, *req.TagIDs); err != nil {
			return nil, err
		}
	}
	tags, err := s.repo.GetTags(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Tags = tags

	if err := s.cache.InvalidateVideo(ctx, id); err != nil {
		log.Printf("cache: invalidate video error: %v", err)
	}

	s.activity.Record(ctx, &actorID, model.ActionUpdate, "video", id, v.Title)
	return v, nil
}

// Delete removes a video; dependent comments, ratings, and tag links cascade.
func (s *VideoService) Delete(ctx context.Context, actorID, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}

	if err := s.cache.InvalidateVideo(ctx, id); err != nil {
		log.Printf("cache: invalidate video error: %v", err)
	}

	s.activity.Record(ctx, &actorID, model.ActionDelete, "video", id, "")
	return nil
}
