package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/patriotthanks/patriotthanks-backend/config"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/internal/app/repository"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
	"github.com/patriotthanks/patriotthanks-backend/pkg/redis"
	"github.com/patriotthanks/patriotthanks-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// RegisterResult pairs the created user with the outcome of school
// resolution. School is nil when no registered domain matched the
// email, which is a normal signup, not an error.
type RegisterResult struct {
	User   *model.User   `json:"user"`
	School *model.School `json:"school,omitempty"`
	Tokens *util.TokenPair
}

type AuthService interface {
	Register(email, password, name string) (*RegisterResult, error)
	Login(email, password string) (*model.User, *util.TokenPair, error)
	Logout(ctx context.Context, token string, claims *util.Claims) error
	RefreshTokens(refreshToken string) (*util.TokenPair, error)
	GetUserByID(id uint) (*model.User, error)
}

type authService struct {
	userRepo      repository.UserRepository
	schoolService SchoolService
	jwtConfig     *config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, schoolService SchoolService, jwtConfig *config.JWTConfig) AuthService {
	return &authService{
		userRepo:      userRepo,
		schoolService: schoolService,
		jwtConfig:     jwtConfig,
	}
}

// Register creates an account and resolves the email domain to a
// school. A resolver miss leaves the account unaffiliated; malformed
// emails and storage failures abort the signup.
func (s *authService) Register(email, password, name string) (*RegisterResult, error) {
	logger.Info("Registering user", map[string]interface{}{
		"email": email,
	})

	fields := map[string]string{}
	if strings.TrimSpace(email) == "" {
		fields["email"] = "email is required"
	}
	if password == "" {
		fields["password"] = "password is required"
	}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "name is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         model.RoleUser,
	}

	school, err := s.schoolService.ResolveSchoolForEmail(email)
	if err != nil && !errors.Is(err, ErrSchoolNotFound) {
		return nil, err
	}
	if school != nil {
		user.SchoolID = &school.ID
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Error("Failed to create user", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtConfig.Secret, s.jwtConfig.AccessTokenExpiry, s.jwtConfig.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	logger.Info("User registered", map[string]interface{}{
		"user_id":    user.ID,
		"affiliated": school != nil,
	})
	return &RegisterResult{User: user, School: school, Tokens: tokens}, nil
}

func (s *authService) Login(email, password string) (*model.User, *util.TokenPair, error) {
	logger.Info("User login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Invalid password", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtConfig.Secret, s.jwtConfig.AccessTokenExpiry, s.jwtConfig.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, err
	}

	logger.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, tokens, nil
}

// Logout blacklists the access token for its remaining lifetime.
func (s *authService) Logout(ctx context.Context, token string, claims *util.Claims) error {
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil
	}

	if err := redis.BlacklistToken(ctx, token, remaining); err != nil {
		logger.Error("Failed to blacklist token", err, map[string]interface{}{
			"user_id": claims.UserID,
		})
		return err
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

func (s *authService) RefreshTokens(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtConfig.Secret)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return util.GenerateTokenPair(
		user.ID, user.Email, string(user.Role),
		s.jwtConfig.Secret, s.jwtConfig.AccessTokenExpiry, s.jwtConfig.RefreshTokenExpiry,
	)
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
