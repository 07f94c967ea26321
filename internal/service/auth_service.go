package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeAccess = "access"

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration) (string, time.Time, error)
}

type authServiceImpl struct {
	userRepo domain.UserRepository
	jwtCfg   config.JWTConfig
	// bcrypt cost, lowered in tests
	cost int
	now  func() time.Time
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, jwtCfg config.JWTConfig) (AuthService, error) {
	if jwtCfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	if jwtCfg.AccessTokenTTL <= 0 {
		jwtCfg.AccessTokenTTL = 24 * time.Hour
	}
	return &authServiceImpl{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}, nil
}

func (s *authServiceImpl) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := domain.Role(req.Role)
	if !role.Valid() {
		return nil, domain.NewInvalidInputError("role must be admin or student").WithContext("role", req.Role)
	}

	_, err := s.userRepo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.NewConflictError("email is already registered").WithContext("email", email)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, domain.NewInternalError("failed to look up user", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	now := s.now()
	user := &domain.User{
		ID:           util.NewULID(),
		Email:        email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.NewConflictError("email is already registered").WithContext("email", email)
		}
		return nil, domain.NewInternalError("failed to create user", err)
	}
	logger.Get().Info("User registered", zap.String("user_id", user.ID), zap.String("role", string(role)))

	return s.issue(ctx, user)
}

func (s *authServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, domain.NewInternalError("failed to look up user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Get().Info("Login rejected", zap.String("user_id", user.ID))
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}
	return s.issue(ctx, user)
}

func (s *authServiceImpl) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("user not found").WithContext("user_id", userID)
		}
		return nil, domain.NewInternalError("failed to load user", err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authServiceImpl) issue(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	token, expiresAt, err := s.CreateJWT(ctx, user, s.jwtCfg.AccessTokenTTL)
	if err != nil {
		return nil, domain.NewInternalError("failed to create access token", err)
	}
	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.TokenType != tokenTypeAccess || !claims.Role.Valid() {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
