// Package session owns the credential pair of the signed-in user.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/repository"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
)

// Session is the single owner of the access/refresh token pair. Every
// write goes through to the token store while the lock is held, so the
// stored pair always matches the last in-memory write.
type Session struct {
	mu      sync.RWMutex
	creds   entity.Credentials
	store   repository.TokenRepository
	logger  logger.Logger
	hooksMu sync.Mutex
	onReset []func()
}

// New creates an empty session backed by store. A nil store keeps tokens in memory only.
func New(store repository.TokenRepository, log logger.Logger) *Session {
	return &Session{
		store:  store,
		logger: logger.OrDefault(log).WithField("component", "session"),
	}
}

// Load restores the tokens persisted by an earlier run
func (s *Session) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	creds, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	s.logger.Debug("Session restored", map[string]interface{}{
		"authenticated": creds.AccessToken != "",
		"refreshable":   creds.RefreshToken != "",
	})
	return nil
}

// OnReset registers fn to run whenever the pair is replaced or cleared:
// login, register, logout and an unrecoverable 401. A refreshed access
// token for the same pair does not trigger it. fn runs without the
// session lock held.
func (s *Session) OnReset(fn func()) {
	s.hooksMu.Lock()
	defer s.hooksMu.Unlock()
	s.onReset = append(s.onReset, fn)
}

func (s *Session) reset() {
	s.hooksMu.Lock()
	hooks := append([]func(){}, s.onReset...)
	s.hooksMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// Credentials returns a copy of the held pair
func (s *Session) Credentials() entity.Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// AccessToken returns the bearer token, or "" when none is held
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.AccessToken
}

// RefreshToken returns the token used to renew the access token, or ""
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.RefreshToken
}

// IsAuthenticated reports whether an access token is held
func (s *Session) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// SetTokens replaces both tokens, as after login or register
func (s *Session) SetTokens(ctx context.Context, creds entity.Credentials) error {
	defer s.reset()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = creds
	return s.persist(ctx)
}

// SetAccessToken replaces the access token and keeps the refresh token
func (s *Session) SetAccessToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds.AccessToken = token
	return s.persist(ctx)
}

// Clear drops both tokens, as on logout or an unrecoverable refresh failure
func (s *Session) Clear(ctx context.Context) error {
	defer s.reset()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = entity.Credentials{}
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Error("Failed to erase stored tokens", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("failed to erase tokens: %w", err)
	}
	return nil
}

// persist must be called with s.mu held
func (s *Session) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, s.creds); err != nil {
		s.logger.Error("Failed to persist tokens", map[string]interface{}{"error": err.Error()})
		return fmt.Errorf("failed to persist tokens: %w", err)
	}
	return nil
}
