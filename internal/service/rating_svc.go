package service

import (
	"context"
	"log"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
)

type RatingService struct {
	repo     *repository.RatingRepo
	cache    *CacheService
	activity *ActivityService
}

func NewRatingService(repo *repository.RatingRepo, cache *CacheService, activity *ActivityService) *RatingService {
	return &RatingService{repo: repo, cache: cache, activity: activity}
}

// Get returns the caller's rating (when authenticated) and the aggregate.
// userID is nil for anonymous requests.
func (s *RatingService) Get(ctx context.Context, videoID int64, userID *int64) (*model.RatingResponse, error) {
	avg, count, err := s.repo.Average(ctx, videoID)
	if err != nil {
		return nil, err
	}

	resp := &model.RatingResponse{AverageRating: avg, TotalRatings: count}
	if userID != nil {
		score, err := s.repo.FindScore(ctx, videoID, *userID)
		if err != nil {
			return nil, err
		}
		resp.UserRating = score
	}
	return resp, nil
}

// Submit upserts the caller's rating and returns the fresh aggregate.
// Submitting twice leaves one row holding the latest score.
func (s *RatingService) Submit(ctx context.Context, videoID, userID int64, score int) (*model.RatingResponse, error) {
	rating, err := s.repo.Upsert(ctx, videoID, userID, score)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrMissingVideo
		}
		return nil, err
	}

	avg, count, err := s.repo.Average(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateVideo(ctx, videoID); err != nil {
		log.Printf("cache: invalidate video error: %v", err)
	}

	s.activity.Record(ctx, &userID, model.ActionUpdate, "rating", videoID, "")

	return &model.RatingResponse{
		UserRating:    &rating.Score,
		AverageRating: avg,
		TotalRatings:  count,
	}, nil
}
