package cache

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/users-revenue-simulator/internal/config"
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// redisClient é o subconjunto do cliente Redis usado pelo cache
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisResultCache guarda resultados de simulação serializados em JSON no Redis
type RedisResultCache struct {
	client redisClient
	prefix string
}

// NewRedisResultCache conecta no Redis configurado e valida a conexão com um ping
func NewRedisResultCache(ctx context.Context, cfg config.Cache) (*RedisResultCache, *redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return newRedisResultCache(client, cfg.KeyPrefix), client, nil
}

func newRedisResultCache(client redisClient, prefix string) *RedisResultCache {
	return &RedisResultCache{
		client: client,
		prefix: prefix,
	}
}

// Get devolve o resultado guardado, ou nil quando a chave não existe
func (c *RedisResultCache) Get(ctx context.Context, key string) (*domain.SimulationResult, error) {
	data, err := c.client.Get(ctx, c.wrapKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "redis get")
	}

	var result domain.SimulationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "decode cached simulation")
	}

	return &result, nil
}

// Set guarda o resultado com o TTL informado
func (c *RedisResultCache) Set(ctx context.Context, key string, result *domain.SimulationResult, ttl time.Duration) error {
	if result == nil {
		return nil
	}

	data, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "encode simulation")
	}

	if err := c.client.Set(ctx, c.wrapKey(key), data, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}

	return nil
}

func (c *RedisResultCache) wrapKey(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}
