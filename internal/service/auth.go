// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/metrics"
	"github.com/taskhive/taskhive/internal/model"
	"github.com/taskhive/taskhive/internal/repository"
	"github.com/taskhive/taskhive/internal/validation"
)

// Service errors.
var (
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Credential limits.
const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 6
	maxPasswordLength = 512
)

// ValidationError carries the full list of field violations so the API
// boundary can render them in one structured 400 body.
type ValidationError struct {
	Violations []validation.Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + " " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// dummyHash is verified against when a login names an unknown username, so
// the response takes as long as a real password check and account existence
// does not leak through timing.
var dummyHash, _ = auth.HashPassword("taskhive-timing-equalizer")

// UserStore is the credential persistence needed by AuthService.
// *repository.Repository satisfies it; tests substitute an in-memory store.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// TokenIssuer issues bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users   UserStore
	tokens  TokenIssuer
	metrics metrics.Recorder
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenIssuer, recorder metrics.Recorder) *AuthService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &AuthService{
		users:   users,
		tokens:  tokens,
		metrics: recorder,
	}
}

// Register validates the credentials, hashes the password with argon2id, and
// persists the new account. The returned user carries only public fields of
// interest to the caller; the hash never leaves the service layer.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	violations := validation.Validate(
		validation.Field{Name: "username", Value: username, Required: true, MinLen: minUsernameLength, MaxLen: maxUsernameLength},
		validation.Field{Name: "password", Value: password, Required: true, MinLen: minPasswordLength, MaxLen: maxPasswordLength},
	)
	if violations != nil {
		return nil, &ValidationError{Violations: violations}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return nil, ErrUsernameExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// Login verifies the credentials and returns a signed bearer token.
// Unknown usernames and wrong passwords produce the identical
// ErrInvalidCredentials so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	violations := validation.Validate(
		validation.Field{Name: "username", Value: username, Required: true},
		validation.Field{Name: "password", Value: password, Required: true},
	)
	if violations != nil {
		return "", &ValidationError{Violations: violations}
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn the same CPU as a real verification.
			_, _ = auth.VerifyPassword(password, dummyHash)
			s.metrics.IncLoginFailure()
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !match {
		s.metrics.IncLoginFailure()
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.IncLoginSuccess()

	return token, nil
}
