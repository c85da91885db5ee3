// Package service holds the use cases the gateway and CLI drive.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	domainservice "github.com/atlasiq/atlasiq-gateway/internal/domain/service"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/middleware"
)

var (
	// ErrNotAuthenticated is returned when an operation needs a session and none is held
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidInput wraps request validation failures
	ErrInvalidInput = errors.New("invalid input")
)

// CredentialStore is the session state the auth use cases write
type CredentialStore interface {
	SetTokens(ctx context.Context, creds entity.Credentials) error
	Clear(ctx context.Context) error
	IsAuthenticated() bool
}

// AuthService logs users in and out of the shared session
type AuthService struct {
	api     domainservice.AuthAPI
	session CredentialStore
	logger  logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(api domainservice.AuthAPI, sess CredentialStore, log logger.Logger) *AuthService {
	return &AuthService{
		api:     api,
		session: sess,
		logger:  logger.OrDefault(log),
	}
}

// Login authenticates and stores the returned token pair
func (s *AuthService) Login(ctx context.Context, creds entity.LoginCredentials) (*entity.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resp, err := s.api.Login(ctx, creds)
	if err != nil {
		s.logger.Warn("Login failed", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"email":      creds.Email,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("login failed: %w", err)
	}

	s.storeTokens(ctx, resp)
	s.logger.Info("User logged in", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"user_id":    resp.User.ID,
	})
	return &resp.User, nil
}

// Register creates an account and stores the returned token pair
func (s *AuthService) Register(ctx context.Context, data entity.RegisterData) (*entity.User, error) {
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resp, err := s.api.Register(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.storeTokens(ctx, resp)
	s.logger.Info("User registered", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
		"user_id":    resp.User.ID,
	})
	return &resp.User, nil
}

// Logout clears the session. Logging out without a session is not an error.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear stored credentials: %w", err)
	}
	s.logger.Info("User logged out", map[string]interface{}{
		"request_id": middleware.GetRequestID(ctx),
	})
	return nil
}

// CurrentUser returns the profile for the held session
func (s *AuthService) CurrentUser(ctx context.Context) (*entity.User, error) {
	if !s.session.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	return user, nil
}

// IsAuthenticated reports whether an access token is held
func (s *AuthService) IsAuthenticated() bool {
	return s.session.IsAuthenticated()
}

func (s *AuthService) storeTokens(ctx context.Context, resp *entity.AuthResponse) {
	if err := s.session.SetTokens(ctx, resp.Credentials()); err != nil {
		// the in-memory session still holds the pair
		s.logger.Warn("Failed to persist credentials", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"error":      err.Error(),
		})
	}
}
