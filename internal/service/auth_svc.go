package service

import (
	"context"
	"errors"
	"log"

	"github.com/tubeshelf/tubeshelf-go/internal/auth"
	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
)

var (
	ErrCredentialsTaken   = errors.New("username or email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type AuthService struct {
	users      *repository.UserRepo
	tokens     *auth.TokenService
	cache      *CacheService
	activity   *ActivityService
	bcryptCost int
}

func NewAuthService(users *repository.UserRepo, tokens *auth.TokenService, cache *CacheService, activity *ActivityService, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		cache:      cache,
		activity:   activity,
		bcryptCost: bcryptCost,
	}
}

// Register creates a user and issues a token so registration doubles as
// login. The first registered account becomes an admin only via direct DB
// seeding; API registrations are always regular users.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, req.Username, req.Email, hash, false)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCredentialsTaken
		}
		return nil, err
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		// No dangling account: the user row is useless without a way to
		// log in later, but the password works, so keep it and surface
		// the token failure.
		return nil, err
	}

	s.activity.Record(ctx, &user.ID, model.ActionCreate, "user", user.ID, "registered")

	return &model.AuthResponse{Token: token, User: user}, nil
}

// Login verifies the password and issues a token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Username, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

// Logout revokes the presented token's JTI until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) {
	if err := s.cache.RevokeToken(ctx, claims.ID, s.tokens.Expiry()); err != nil {
		log.Printf("auth: token revocation failed: %v", err)
	}
}

// Me returns the current user's profile.
func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}
