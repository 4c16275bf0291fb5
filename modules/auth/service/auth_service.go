package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/adityamakwana707/globetrotter-sub000/core/config"
	"github.com/adityamakwana707/globetrotter-sub000/core/errors"
	"github.com/adityamakwana707/globetrotter-sub000/core/utils"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/dto"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/entity"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth/repository"
)

// AuthService handles account registration and token issuance
type AuthService struct {
	repo repository.UserRepositoryInterface
	cfg  config.AuthConfig
}

// AuthServiceInterface defines the service contract
type AuthServiceInterface interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError)
}

// NewAuthService creates a new auth service
func NewAuthService(repo repository.UserRepositoryInterface, cfg config.AuthConfig) AuthServiceInterface {
	return &AuthService{repo: repo, cfg: cfg}
}

// Register creates an account and signs its first token
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to check account", err)
	}
	if existing != nil {
		return nil, errors.NewAppError(errors.ErrAlreadyExists, "Email already registered", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to hash password", err)
	}

	created, err := s.repo.CreateUser(ctx, &entity.User{
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to create account", err)
	}

	return s.authResponse(created)
}

// Login verifies credentials and signs a token. Unknown email and wrong
// password answer identically.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, *errors.AppError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to load account", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid email or password", nil)
	}

	return s.authResponse(user)
}

func (s *AuthService) authResponse(user *entity.User) (*dto.AuthResponse, *errors.AppError) {
	ttl := time.Duration(s.cfg.TokenTTLMinute) * time.Minute
	token, err := utils.GenerateToken(user.ID, user.Email, s.cfg.JWTSecret, ttl)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "Failed to sign token", err)
	}

	return &dto.AuthResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}
