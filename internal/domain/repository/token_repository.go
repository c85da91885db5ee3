// Package repository declares the persistence ports of the client.
package repository

import (
	"context"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

// Storage keys of the credential pair
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// TokenRepository persists the session's credential pair durably
type TokenRepository interface {
	// Load returns the stored pair; missing tokens come back empty
	Load(ctx context.Context) (entity.Credentials, error)

	// Save stores the pair; an empty token removes its key
	Save(ctx context.Context, creds entity.Credentials) error

	// Clear removes both tokens
	Clear(ctx context.Context) error
}
