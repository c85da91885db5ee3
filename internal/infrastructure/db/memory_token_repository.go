package db

import (
	"context"
	"sync"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

// MemoryTokenRepository keeps tokens in process memory only
type MemoryTokenRepository struct {
	mu    sync.Mutex
	creds entity.Credentials
	saves int
}

// NewMemoryTokenRepository creates a store seeded with creds
func NewMemoryTokenRepository(creds entity.Credentials) *MemoryTokenRepository {
	return &MemoryTokenRepository{creds: creds}
}

func (m *MemoryTokenRepository) Load(ctx context.Context) (entity.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creds, nil
}

func (m *MemoryTokenRepository) Save(ctx context.Context, creds entity.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = creds
	m.saves++
	return nil
}

func (m *MemoryTokenRepository) Clear(ctx context.Context) error {
	return m.Save(ctx, entity.Credentials{})
}

// Saves returns how many writes the store has seen
func (m *MemoryTokenRepository) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
