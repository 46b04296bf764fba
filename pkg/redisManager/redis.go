package redisManager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Nil is returned by Get when the key does not exist.
var Nil = redis.Nil

func IsKeyNotExist(err error) bool {
	return errors.Is(err, redis.Nil)
}

type RedisConfig struct {
	Addr         string
	Username     string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

// RedisManager is the subset of Redis the service uses: string keys with
// expiry.
type RedisManager interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error
	Close() error
}

type redisManagerImpl struct {
	client *redis.Client
}

func withDefault(v, def time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return def
}

// NewRedisClient builds a client without connecting.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:         cfg.Addr,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  withDefault(cfg.DialTimeout, 5*time.Second),
		ReadTimeout:  withDefault(cfg.ReadTimeout, 3*time.Second),
		WriteTimeout: withDefault(cfg.WriteTimeout, 3*time.Second),
		PoolSize:     20,
		MinIdleConns: 2,
	}
	if cfg.PoolSize > 0 {
		options.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		options.MinIdleConns = cfg.MinIdleConns
	}
	return redis.NewClient(options)
}

func NewRedisManager(client *redis.Client) RedisManager {
	return &redisManagerImpl{client: client}
}

// ProvideRedisManager connects on start and closes on stop.
func ProvideRedisManager(lc fx.Lifecycle, cfg *RedisConfig, log *zap.Logger) RedisManager {
	client := NewRedisClient(cfg)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("failed to connect to Redis: %w", err)
			}
			log.Info("redis connected", zap.String("addr", cfg.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("closing redis connection")
			return client.Close()
		},
	})

	return NewRedisManager(client)
}

func (r *redisManagerImpl) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *redisManagerImpl) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *redisManagerImpl) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisManagerImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisManagerImpl) Close() error {
	return r.client.Close()
}
