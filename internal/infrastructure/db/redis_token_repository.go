package db

import (
	"context"
	"fmt"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/atlasiq/atlasiq-gateway/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

// RedisTokenRepository keeps the credential pair in redis, for gateways
// that run several replicas against one session.
type RedisTokenRepository struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisTokenRepository wraps a redis client; keys are namespaced by prefix
func NewRedisTokenRepository(client redis.UniversalClient, prefix string) *RedisTokenRepository {
	return &RedisTokenRepository{rdb: client, prefix: prefix}
}

// OpenRedis connects and pings the server
func OpenRedis(ctx context.Context, options *redis.Options) (*redis.Client, error) {
	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis: %w", err)
	}
	return client, nil
}

func (r *RedisTokenRepository) key(name string) string {
	return r.prefix + name
}

// Load returns the stored credential pair
func (r *RedisTokenRepository) Load(ctx context.Context) (entity.Credentials, error) {
	vals, err := r.rdb.MGet(ctx, r.key(repository.AccessTokenKey), r.key(repository.RefreshTokenKey)).Result()
	if err != nil {
		return entity.Credentials{}, fmt.Errorf("failed to load tokens: %w", err)
	}

	var creds entity.Credentials
	if s, ok := vals[0].(string); ok {
		creds.AccessToken = s
	}
	if s, ok := vals[1].(string); ok {
		creds.RefreshToken = s
	}
	return creds, nil
}

// Save writes both tokens atomically
func (r *RedisTokenRepository) Save(ctx context.Context, creds entity.Credentials) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		r.put(ctx, pipe, repository.AccessTokenKey, creds.AccessToken)
		r.put(ctx, pipe, repository.RefreshTokenKey, creds.RefreshToken)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store tokens: %w", err)
	}
	return nil
}

// Clear removes both tokens
func (r *RedisTokenRepository) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key(repository.AccessTokenKey), r.key(repository.RefreshTokenKey)).Err(); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}

func (r *RedisTokenRepository) put(ctx context.Context, pipe redis.Pipeliner, name, value string) {
	if value == "" {
		pipe.Del(ctx, r.key(name))
		return
	}
	pipe.Set(ctx, r.key(name), value, 0)
}
