package service

import (
	"context"

	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
)

// ActivityService writes the audit trail. Writes are best-effort: a failed
// audit insert is logged and never escalates into the caller's response.
type ActivityService struct {
	repo *repository.ActivityRepo
}

func NewActivityService(repo *repository.ActivityRepo) *ActivityService {
	return &ActivityService{repo: repo}
}

// Record appends one audit row. userID is nil for system actions.
func (s *ActivityService) Record(ctx context.Context, userID *int64, action, entityType string, entityID int64, details string) {
	if err := s.repo.Insert(ctx, userID, action, entityType, entityID, details); err != nil {
		middleware.Logger.Error().
			Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Int64("entity_id", entityID).
			Msg("activity log write failed")
	}
}

// List returns a page of audit rows for the admin console.
func (s *ActivityService) List(ctx context.Context, page, limit int) (*model.Page[model.ActivityLog], error) {
	logs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.ActivityLog]{Data: logs, Page: page, Limit: limit, Total: total}, nil
}
