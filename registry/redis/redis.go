// Package redis stores the endpoint under a single Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kbukum/voxrelay/logger"
	"github.com/kbukum/voxrelay/registry"
)

func init() {
	registry.RegisterFactory(registry.ProviderRedis, func(_ context.Context, cfg registry.Config, log *logger.Logger) (registry.Store, error) {
		return New(cfg.Redis, log), nil
	})
}

// Store reads and writes one Redis key.
type Store struct {
	rdb *goredis.Client
	key string
	log *logger.Logger
}

var _ registry.Store = (*Store)(nil)

// New creates a Store. The connection is established lazily by go-redis.
func New(cfg registry.RedisConfig, log *logger.Logger) *Store {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	if log == nil {
		log = logger.Nop()
	}
	log.WithComponent("registry.redis").Debug("Redis registry configured", logger.Fields(
		"addr", cfg.Addr, "db", cfg.DB, "key", cfg.Key,
	))
	return &Store{rdb: rdb, key: cfg.Key, log: log}
}

// Get returns the stored URL or registry.ErrNotFound.
func (s *Store) Get(ctx context.Context) (string, error) {
	v, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", registry.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return v, nil
}

// Set overwrites the key with no expiry.
func (s *Store) Set(ctx context.Context, value string) error {
	if err := s.rdb.Set(ctx, s.key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the client.
func (s *Store) Close(context.Context) error {
	return s.rdb.Close()
}
