package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
)

// ErrCoolingDown carries the remaining wait so the handler can return 429
// with waitTime.
type ErrCoolingDown struct {
	WaitSeconds int
}

func (e *ErrCoolingDown) Error() string {
	return fmt.Sprintf("comment cooldown active, wait %d seconds", e.WaitSeconds)
}

// ErrMissingVideo maps to 404: the target video does not exist.
var ErrMissingVideo = errors.New("referenced video does not exist")

type CommentService struct {
	repo     *repository.CommentRepo
	gate     *CooldownGate
	cache    *CacheService
	activity *ActivityService
}

func NewCommentService(repo *repository.CommentRepo, gate *CooldownGate, cache *CacheService, activity *ActivityService) *CommentService {
	// The gate consults this on every local-fallback miss, so an active
	// window survives restarts and mid-flight Redis outages alike.
	gate.SeedFrom(func(ctx context.Context, userID int64) time.Time {
		last, err := repo.LastCommentAt(ctx, userID)
		if err != nil {
			return time.Time{}
		}
		return last
	})
	return &CommentService{repo: repo, gate: gate, cache: cache, activity: activity}
}

// ListByVideo returns a page of a video's comments.
func (s *CommentService) ListByVideo(ctx context.Context, videoID int64, page, limit int) (*model.Page[model.Comment], error) {
	comments, total, err := s.repo.ListByVideo(ctx, videoID, page, limit)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.Comment]{Data: comments, Page: page, Limit: limit, Total: total}, nil
}

// Get returns a single comment.
func (s *CommentService) Get(ctx context.Context, id int64) (*model.Comment, error) {
	return s.repo.FindByID(ctx, id)
}

// Create posts a comment after the cooldown check. The Redis gate is
// authoritative; the local fallback seeds itself from the database when
// consulted.
func (s *CommentService) Create(ctx context.Context, userID, videoID int64, content string) (*model.Comment, error) {
	if wait := s.gate.Check(ctx, userID); wait > 0 {
		return nil, &ErrCoolingDown{WaitSeconds: wait}
	}

	c, err := s.repo.Create(ctx, videoID, userID, content)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrMissingVideo
		}
		return nil, err
	}

	s.gate.Touch(ctx, userID)

	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		log.Printf("cache: invalidate video error: %v", err)
	}

	s.activity.Record(ctx, &userID, model.ActionCreate, "comment", c.ID, truncate(content, 80))
	return c, nil
}

// Update edits a comment. The permission check (owner or admin) happens in
// the handler, which already holds both the claims and the comment.
func (s *CommentService) Update(ctx context.Context, actorID, id int64, content string) (*model.Comment, error) {
	c, err := s.repo.Update(ctx, id, content)
	if err != nil {
		return nil, err
	}
	s.activity.Record(ctx, &actorID, model.ActionUpdate, "comment", id, truncate(content, 80))
	return c, nil
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, actorID, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	s.activity.Record(ctx, &actorID, model.ActionDelete, "comment", id, "")
	return nil
}

// Window returns the configured cooldown, for surfacing in error messages.
func (s *CommentService) Window() time.Duration {
	return s.gate.window
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
