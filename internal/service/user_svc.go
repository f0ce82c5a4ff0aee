package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/tubeshelf/tubeshelf-go/internal/auth"
	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
)

// ErrUserHasContent maps to 409: the user still owns comments or ratings.
var ErrUserHasContent = errors.New("user still has comments or ratings")

type UserService struct {
	repo       *repository.UserRepo
	cache      *CacheService
	activity   *ActivityService
	bcryptCost int
}

func NewUserService(repo *repository.UserRepo, cache *CacheService, activity *ActivityService, bcryptCost int) *UserService {
	return &UserService{repo: repo, cache: cache, activity: activity, bcryptCost: bcryptCost}
}

// Create adds an account on behalf of an admin. This is the only API path
// that can mint further admins; self-registration never can.
func (s *UserService) Create(ctx context.Context, actorID int64, req model.UserCreateRequest) (*model.User, error) {
	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, req.Username, req.Email, hash, req.IsAdmin)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCredentialsTaken
		}
		return nil, err
	}

	s.activity.Record(ctx, &actorID, model.ActionCreate, "user", u.ID, u.Username)
	return u, nil
}

// Lookup returns a single user profile.
func (s *UserService) Lookup(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of users (admin console).
func (s *UserService) List(ctx context.Context, page, limit int) (*model.Page[model.User], error) {
	users, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &model.Page[model.User]{Data: users, Page: page, Limit: limit, Total: total}, nil
}

// Update applies a partial profile update. Only admins may flip isAdmin;
// the handler clears that field for non-admin callers before invoking this.
func (s *UserService) Update(ctx context.Context, actorID, id int64, req model.UserUpdateRequest) (*model.User, error) {
	var passwordHash *string
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}

	u, err := s.repo.Update(ctx, id, req.Email, passwordHash, req.IsAdmin)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCredentialsTaken
		}
		return nil, err
	}

	s.activity.Record(ctx, &actorID, model.ActionUpdate, "user", id, "")
	return u, nil
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return ErrUserHasContent
		}
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}

	s.activity.Record(ctx, &actorID, model.ActionDelete, "user", id, "")
	return nil
}

// GetStats returns aggregate catalog statistics, cached for a minute.
func (s *UserService) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	if cached, err := s.cache.GetStats(ctx); err == nil && cached != nil {
		var stats model.StatsResponse
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetStats(ctx, stats); err != nil {
		log.Printf("cache: set stats error: %v", err)
	}
	return stats, nil
}
