package db

import (
	"context"
	"fmt"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/repository"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/config"
	"github.com/atlasiq/atlasiq-gateway/internal/infrastructure/logger"
	"github.com/redis/go-redis/v9"
)

// OpenTokenStore opens the configured token backend. The returned close
// func releases it.
func OpenTokenStore(ctx context.Context, cfg config.TokenStore, log logger.Logger) (repository.TokenRepository, func() error, error) {
	log = logger.OrDefault(log)

	switch cfg.Backend {
	case config.StoreRedis:
		client, err := OpenRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using redis token store", map[string]interface{}{
			"addr":   cfg.RedisAddr,
			"prefix": cfg.RedisPrefix,
		})
		return NewRedisTokenRepository(client, cfg.RedisPrefix), client.Close, nil

	case config.StoreBadger, "":
		bdb, err := OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using badger token store", map[string]interface{}{
			"path": cfg.BadgerPath,
		})
		return NewBadgerTokenRepository(bdb), bdb.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported token store %q", cfg.Backend)
}
