package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client define el contrato mínimo que el rate limiter necesita del cache,
// para poder inyectar un fake en tests.
type Client interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// RedisClient implementación de Client sobre Redis.
type RedisClient struct {
	rdb *redis.Client
}

// NewRedisClient crea el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, addr string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisClient{rdb: rdb}, nil
}

// Incr incrementa el contador de la clave y devuelve el nuevo valor.
func (c *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return c.rdb.Incr(ctx, key).Result()
}

// Expire fija el TTL de la clave.
func (c *RedisClient) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.rdb.Expire(ctx, key, ttl).Err()
}

// Del elimina la clave.
func (c *RedisClient) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// Close cierra la conexión.
func (c *RedisClient) Close() error {
	return c.rdb.Close()
}
