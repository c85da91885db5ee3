package api

import (
	"context"
	"net/http"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

const (
	loginPath    = "/api/v1/auth/login"
	registerPath = "/api/v1/auth/register"
	mePath       = "/api/v1/auth/me"
)

// Login authenticates and returns the user with a fresh token pair.
// The caller decides whether to hold the tokens.
func (c *Client) Login(ctx context.Context, creds entity.LoginCredentials) (*entity.AuthResponse, error) {
	var resp entity.AuthResponse
	if err := c.DoAnonymous(ctx, http.MethodPost, loginPath, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns it with a token pair
func (c *Client) Register(ctx context.Context, data entity.RegisterData) (*entity.AuthResponse, error) {
	var resp entity.AuthResponse
	if err := c.DoAnonymous(ctx, http.MethodPost, registerPath, data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the profile of the session's user
func (c *Client) Me(ctx context.Context) (*entity.User, error) {
	var user entity.User
	if err := c.Do(ctx, http.MethodGet, mePath, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
