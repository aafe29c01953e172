package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/metrics"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// AuthService handles accounts, credentials and access tokens
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	// Logout revokes the token identified by tokenID until it would have expired.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type authServiceImpl struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenManager
	blacklist  repository.TokenBlacklist
	bcryptCost int
	now        func() time.Time
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	blacklist repository.TokenBlacklist,
	m *metrics.Metrics,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		tokens:     tokens,
		blacklist:  blacklist,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
		metrics:    m,
		logger:     logger,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, internalError("Failed to check email", err)
	}
	if exists {
		s.recordAttempt("register", false)
		return nil, response.NewConflictError("Email already exists", "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, internalError("Failed to hash password", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, internalError("Failed to create user", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	s.recordAttempt("register", true)
	return s.issue(user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			s.recordAttempt("login", false)
			return nil, response.NewUnauthorizedError("Invalid credentials", "")
		}
		return nil, internalError("Failed to fetch user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Warn("Stored password hash is unusable",
				zap.String("user_id", user.ID.String()),
				zap.Error(err))
		}
		s.recordAttempt("login", false)
		return nil, response.NewUnauthorizedError("Invalid credentials", "")
	}

	if !user.IsActive {
		s.recordAttempt("login", false)
		return nil, response.NewUnauthorizedError("Account is deactivated", "")
	}

	s.recordAttempt("login", true)
	return s.issue(user)
}

func (s *authServiceImpl) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return response.NewUnauthorizedError("Token has no identifier", "")
	}
	if err := s.blacklist.Revoke(ctx, tokenID, expiresAt.Sub(s.now())); err != nil {
		return internalError("Failed to revoke token", err)
	}
	return nil
}

func (s *authServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found", "Failed to fetch user")
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "User not found", "Failed to fetch user")
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, internalError("Failed to update user", err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authServiceImpl) issue(user *domain.User) (*dto.AuthResponse, error) {
	token, claims, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, internalError("Failed to issue token", err)
	}
	return &dto.AuthResponse{
		User:        toUserResponse(user),
		AccessToken: token,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

func (s *authServiceImpl) recordAttempt(operation string, success bool) {
	if s.metrics != nil {
		s.metrics.RecordAuthAttempt(operation, success)
	}
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
