package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"portal/internal/models"
	"portal/internal/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the username is unknown so a failed
// login costs the same whether or not the user exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("portal-dummy-password"), bcrypt.DefaultCost)

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// AuthService handles business logic for authentication and profile changes.
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenIssuer
	tokenTTL time.Duration
	log      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, tokens *TokenIssuer, tokenTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Login checks the credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		// Do not reveal whether the username exists.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		s.log.Info("login failed", zap.String("username", username))
		return nil, ErrUnauthorized
	}

	if !VerifyPassword(password, user.PasswordHash) {
		s.log.Info("login failed", zap.String("username", username))
		return nil, ErrUnauthorized
	}

	token, expiresAt, err := s.tokens.Issue(user.Username, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	s.log.Info("login succeeded", zap.String("username", username))
	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Authenticate resolves a bearer token to the user it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	username, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug("token rejected", zap.Error(err))
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile renames the user and/or resets the password.
// Renaming onto another user's username fails with ErrConflict.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, upd models.ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		name := strings.TrimSpace(*upd.Username)
		if name == "" {
			return nil, fieldError("username", "must not be empty")
		}
		if utf8.RuneCountInString(name) > models.MaxUsernameLength {
			return nil, fieldError("username", fmt.Sprintf("must be at most %d characters", models.MaxUsernameLength))
		}
		user.Username = name
	}
	if upd.Password != nil {
		hashed, err := HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, user.Username)
		}
		return nil, err
	}
	s.log.Info("profile updated", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}
