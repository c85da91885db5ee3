// Package db holds the durable token store adapters.
package db

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/repository"
	"github.com/dgraph-io/badger/v3"
)

// BadgerTokenRepository keeps the credential pair in a local BadgerDB
type BadgerTokenRepository struct {
	db *badger.DB
}

// NewBadgerTokenRepository wraps an open BadgerDB
func NewBadgerTokenRepository(db *badger.DB) *BadgerTokenRepository {
	return &BadgerTokenRepository{db: db}
}

// OpenBadger opens (creating if needed) a BadgerDB at path with its own logging disabled
func OpenBadger(path string) (*badger.DB, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create token store directory: %w", err)
	}

	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return db, nil
}

// Load returns the stored credential pair
func (r *BadgerTokenRepository) Load(ctx context.Context) (entity.Credentials, error) {
	var creds entity.Credentials

	err := r.db.View(func(txn *badger.Txn) error {
		access, err := getString(txn, repository.AccessTokenKey)
		if err != nil {
			return err
		}
		refresh, err := getString(txn, repository.RefreshTokenKey)
		if err != nil {
			return err
		}
		creds = entity.Credentials{AccessToken: access, RefreshToken: refresh}
		return nil
	})
	if err != nil {
		return entity.Credentials{}, fmt.Errorf("failed to load tokens: %w", err)
	}

	return creds, nil
}

// Save writes both tokens in one transaction
func (r *BadgerTokenRepository) Save(ctx context.Context, creds entity.Credentials) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		if err := putString(txn, repository.AccessTokenKey, creds.AccessToken); err != nil {
			return err
		}
		return putString(txn, repository.RefreshTokenKey, creds.RefreshToken)
	})
	if err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}
	return nil
}

// Clear removes both tokens
func (r *BadgerTokenRepository) Clear(ctx context.Context) error {
	return r.Save(ctx, entity.Credentials{})
}

func getString(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func putString(txn *badger.Txn, key, value string) error {
	if value == "" {
		return txn.Delete([]byte(key))
	}
	return txn.Set([]byte(key), []byte(value))
}
