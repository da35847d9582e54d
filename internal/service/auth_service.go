package service

import (
	"context"
	"errors"
	"fmt"

	"cafe-pos/internal/auth"
	"cafe-pos/internal/model"
	"cafe-pos/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	bcryptCost int,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger.With().Str("service", "auth").Logger(),
	}
}

func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (int64, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return 0, model.NewValidationError("Username and password required")
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return 0, model.NewValidationError(
			fmt.Sprintf("Password must be at most %d bytes", auth.MaxPasswordBytes))
	}

	role := req.Role
	if role == "" {
		role = model.RoleAdmin
	}
	if len(role) > model.MaxRoleLength {
		return 0, model.NewValidationError(
			fmt.Sprintf("Role must be at most %d characters", model.MaxRoleLength))
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return 0, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			s.logger.Warn().Str("username", req.Username).Msg("username already registered")
		}
		return 0, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().
		Int64("user_id", id).
		Str("username", user.Username).
		Str("role", string(role)).
		Msg("user registered")

	return id, nil
}

func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return nil, model.NewValidationError("Username and password required")
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Warn().Str("username", req.Username).Msg("invalid login attempt")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Claims{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	s.logger.Debug().Int64("user_id", user.ID).Msg("user logged in")

	return &model.LoginResponse{
		Token: token,
		User: model.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

func (s *authService) Authenticate(token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}
